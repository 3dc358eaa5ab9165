package upload

import (
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/dmitrymomot/mvckit/pkg/request"
)

// ParamMultimap collects form-field values by name. Names keep first-insertion
// order and every name keeps its values in arrival order, duplicates included.
type ParamMultimap struct {
	names  []string
	values map[string][]string
}

func NewParamMultimap() *ParamMultimap {
	return &ParamMultimap{values: make(map[string][]string)}
}

func (m *ParamMultimap) Add(name, value string) {
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = append(m.values[name], value)
}

// Names returns the collected names in first-insertion order.
func (m *ParamMultimap) Names() []string {
	return slices.Clone(m.names)
}

func (m *ParamMultimap) Values(name string) []string {
	return slices.Clone(m.values[name])
}

func (m *ParamMultimap) Len() int {
	return len(m.names)
}

// Publish replaces the request parameters of every collected name with its full value list.
func (m *ParamMultimap) Publish(req *request.Request) {
	for _, name := range m.names {
		req.SetParameter(name, m.values[name]...)
	}
}

// TextResult is the outcome of decoding a form-field value.
// Fallback is set when a declared charset could not be used and the bytes
// were read as UTF-8 instead; Err then holds the reason.
type TextResult struct {
	Text     string
	Charset  string
	Fallback bool
	Err      error
}

// DecodeText decodes b using charset. An empty charset reads b as UTF-8.
// An unknown charset or a decoding failure falls back to UTF-8 with invalid
// sequences replaced by U+FFFD.
func DecodeText(b []byte, charset string) TextResult {
	if charset == "" {
		return TextResult{Text: platformText(b)}
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return TextResult{Text: platformText(b), Charset: charset, Fallback: true, Err: err}
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return TextResult{Text: platformText(b), Charset: charset, Fallback: true, Err: err}
	}
	return TextResult{Text: string(out), Charset: charset}
}

func platformText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
