package i18n

import "errors"

var (
	ErrNilAdapter         = errors.New("translation adapter is nil")
	ErrFailedToParseYAML  = errors.New("failed to parse YAML content")
	ErrFailedToReadFile   = errors.New("failed to read translation file")
	ErrInvalidLanguageTag = errors.New("invalid language tag")
	ErrNoTranslationFiles = errors.New("no translation files matched")
)
