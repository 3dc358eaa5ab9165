package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrymomot/mvckit/pkg/validator"
)

// DefaultLanguage is used when no language is configured or negotiated.
const DefaultLanguage = "en"

// Translator renders message templates for a fixed set of languages.
// It is immutable after construction and safe for concurrent use.
type Translator struct {
	translations  map[string]map[string]any
	tags          []language.Tag
	matcher       language.Matcher
	defaultLang   string
	fallbackToKey bool
	logger        *slog.Logger
}

// NewTranslator loads the embedded bundles, merges translations from adapter
// on top of them and prepares language negotiation.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		opt(t)
	}

	defaults, err := DefaultAdapter().Load(ctx)
	if err != nil {
		return nil, err
	}
	loaded, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]map[string]any)
	merge(raw, defaults)
	merge(raw, loaded)

	t.translations = make(map[string]map[string]any, len(raw))
	for lang, tree := range raw {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLanguageTag, lang)
		}
		key := tag.String()
		if t.translations[key] == nil {
			t.translations[key] = make(map[string]any, len(tree))
		}
		for k, v := range tree {
			t.translations[key][k] = v
		}
	}

	defaultTag, err := language.Parse(t.defaultLang)
	if err != nil {
		return nil, fmt.Errorf("%w: default %q", ErrInvalidLanguageTag, t.defaultLang)
	}
	t.defaultLang = defaultTag.String()

	// The matcher falls back to its first tag.
	t.tags = []language.Tag{defaultTag}
	for _, lang := range t.SupportedLanguages() {
		if lang != t.defaultLang {
			t.tags = append(t.tags, language.Make(lang))
		}
	}
	t.matcher = language.NewMatcher(t.tags)

	t.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", t.SupportedLanguages()))
	return t, nil
}

// SupportedLanguages returns the canonical tags with translations, sorted.
func (t *Translator) SupportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// DefaultLanguage returns the canonical default tag.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Negotiate picks the best supported language for an Accept-Language header value.
func (t *Translator) Negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return t.defaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.defaultLang
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.defaultLang
	}
	return t.tags[idx].String()
}

// Supports reports whether lang resolves to a loaded bundle without falling back
// to the default language.
func (t *Translator) Supports(lang string) bool {
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	if _, ok := t.translations[tag.String()]; ok {
		return true
	}
	_, _, conf := t.matcher.Match(tag)
	return conf != language.No
}

// T renders key for lang, substituting positional placeholders with args.
// Unknown languages resolve to the closest supported one, then to the default.
// A missing key renders as the key itself unless WithFallbackToKey(false) is set.
func (t *Translator) T(lang, key string, args ...any) string {
	tag, tree := t.lookup(lang)

	val, ok := getTranslation(tree, key)
	if !ok && tag.String() != t.defaultLang {
		val, ok = getTranslation(t.translations[t.defaultLang], key)
	}
	if !ok {
		t.logger.Debug("translation not found", slog.String("lang", tag.String()), slog.String("key", key))
		if t.fallbackToKey {
			return format(tag, key, args)
		}
		return ""
	}

	tmpl, isString := val.(string)
	if !isString {
		t.logger.Debug("translation is not a string",
			slog.String("lang", tag.String()), slog.String("key", key), slog.String("type", fmt.Sprintf("%T", val)))
		if t.fallbackToKey {
			return format(tag, key, args)
		}
		return ""
	}
	return format(tag, tmpl, args)
}

// Message renders a validation message. The category does not take part in the lookup.
func (t *Translator) Message(lang string, msg validator.Message) string {
	return t.T(lang, msg.Key, msg.Args...)
}

// Messages renders a collection in insertion order.
func (t *Translator) Messages(lang string, msgs *validator.Messages) []string {
	return msgs.Translate(func(m validator.Message) string {
		return t.Message(lang, m)
	})
}

func (t *Translator) lookup(lang string) (language.Tag, map[string]any) {
	if tag, err := language.Parse(lang); err == nil {
		if tree, ok := t.translations[tag.String()]; ok {
			return tag, tree
		}
		if _, idx, conf := t.matcher.Match(tag); conf != language.No {
			best := t.tags[idx]
			return best, t.translations[best.String()]
		}
	}
	best := t.tags[0]
	return best, t.translations[best.String()]
}

// getTranslation looks key up as a flat entry first, then walks nested maps by its dot-separated parts.
func getTranslation(tree map[string]any, key string) (any, bool) {
	if tree == nil {
		return nil, false
	}
	if val, ok := tree[key]; ok {
		return val, true
	}

	current := tree
	parts := strings.Split(key, ".")
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		next, ok := val.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

var placeholderRegex = regexp.MustCompile(`\{(\d+)\}`)

func format(tag language.Tag, tmpl string, args []any) string {
	if len(args) == 0 {
		return tmpl
	}
	p := message.NewPrinter(tag)
	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		idx, err := strconv.Atoi(match[1 : len(match)-1])
		if err != nil || idx >= len(args) {
			return match
		}
		switch v := args[idx].(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return p.Sprintf("%d", v)
		case float32, float64:
			return p.Sprintf("%v", v)
		default:
			return fmt.Sprint(v)
		}
	})
}
