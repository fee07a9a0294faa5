package i18n

import (
	"errors"
	"fmt"
)

var (
	ErrNilAdapter          = errors.New("translation adapter is nil")
	ErrFailedToMarshalJSON = errors.New("failed to marshal translations to JSON")
	ErrParsingCancelled    = errors.New("translation parsing cancelled")
	ErrFailedToParseJSON   = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML   = errors.New("failed to parse YAML content")
	ErrInvalidStructure    = errors.New("invalid translation document structure")
	ErrEmptyLanguageCode   = errors.New("empty language code")

	ErrLoadingCancelled  = errors.New("loading translations cancelled")
	ErrFailedToReadFile  = errors.New("failed to read translation file")
	ErrFailedToParseFile = errors.New("failed to parse translation file")
	ErrFailedToReadDir   = errors.New("failed to read translation directory")
	ErrNoTranslations    = errors.New("no translation files found")
)

// ErrLanguageNotSupported indicates that the requested language is not available.
type ErrLanguageNotSupported struct {
	Lang string
}

func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("language not supported: %s", e.Lang)
}
