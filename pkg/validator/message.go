package validator

import (
	"fmt"
	"slices"
	"strings"
)

// Message is a localizable validation notice. Category groups related messages
// (usually the field or subsystem that produced it), Key selects the template
// from a message bundle and Args fill its positional placeholders.
type Message struct {
	Category string
	Key      string
	Args     []any
}

// NewMessage builds a Message. Args are copied.
func NewMessage(category, key string, args ...any) Message {
	return Message{
		Category: category,
		Key:      key,
		Args:     slices.Clone(args),
	}
}

// String renders the message without translation, e.g. "upload: file.limit.exceeded [10 5]".
func (m Message) String() string {
	if len(m.Args) == 0 {
		return m.Category + ": " + m.Key
	}
	return fmt.Sprintf("%s: %s %v", m.Category, m.Key, m.Args)
}

// Messages is the ordered collection of validation messages gathered while a
// request is processed. The zero value is ready to use.
// Not safe for concurrent use.
type Messages struct {
	list []Message
}

// Add appends msgs in order.
func (m *Messages) Add(msgs ...Message) {
	m.list = append(m.list, msgs...)
}

// All returns a copy of the collected messages in insertion order.
func (m *Messages) All() []Message {
	if m == nil {
		return nil
	}
	return slices.Clone(m.list)
}

func (m *Messages) Len() int {
	if m == nil {
		return 0
	}
	return len(m.list)
}

func (m *Messages) IsEmpty() bool {
	return m.Len() == 0
}

// Has reports whether a message with the given key was added.
func (m *Messages) Has(key string) bool {
	if m == nil {
		return false
	}
	return slices.ContainsFunc(m.list, func(msg Message) bool { return msg.Key == key })
}

// ByCategory returns the messages of one category in insertion order.
func (m *Messages) ByCategory(category string) []Message {
	if m == nil {
		return nil
	}
	var out []Message
	for _, msg := range m.list {
		if msg.Category == category {
			out = append(out, msg)
		}
	}
	return out
}

// Translate renders every message with fn, keeping insertion order.
func (m *Messages) Translate(fn func(Message) string) []string {
	if m == nil || fn == nil {
		return nil
	}
	out := make([]string, 0, len(m.list))
	for _, msg := range m.list {
		out = append(out, fn(msg))
	}
	return out
}

// Error makes a non-empty collection usable as an error value.
func (m *Messages) Error() string {
	if m.IsEmpty() {
		return "validation failed"
	}
	parts := make([]string, 0, len(m.list))
	for _, msg := range m.list {
		parts = append(parts, msg.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns m as an error when it holds messages, nil otherwise.
func (m *Messages) Err() error {
	if m.IsEmpty() {
		return nil
	}
	return m
}
