package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mvckit/pkg/validator"
)

func TestMessages_Apply(t *testing.T) {
	t.Parallel()

	var msgs validator.Messages
	ok := msgs.Apply(
		validator.Rule{Check: func() bool { return true }, Message: validator.NewMessage("a", "passes")},
		validator.Rule{Check: func() bool { return false }, Message: validator.NewMessage("b", "fails.first")},
		validator.Rule{Message: validator.NewMessage("c", "no.check")},
		validator.Rule{Check: func() bool { return false }, Message: validator.NewMessage("d", "fails.second")},
	)

	assert.False(t, ok)
	assert.Equal(t, []validator.Message{
		validator.NewMessage("b", "fails.first"),
		validator.NewMessage("d", "fails.second"),
	}, msgs.All())

	assert.True(t, msgs.Apply())
	assert.Equal(t, 2, msgs.Len())
}
