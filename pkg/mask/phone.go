package mask

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

// PhoneFormat selects how FormatPhone renders a number.
type PhoneFormat = phonenumbers.PhoneNumberFormat

const (
	E164          = phonenumbers.E164
	International = phonenumbers.INTERNATIONAL
	National      = phonenumbers.NATIONAL
)

// PhoneMask returns an input mask for mobile numbers of an ISO 3166 region,
// derived from the example number in libphonenumber's metadata:
//
//	PhoneMask("US") // "+1 999-999-9999"
//	PhoneMask("GB") // "+44 9999 999999"
//
// The country code is kept literal. Unknown regions return ErrUnknownRegion.
func PhoneMask(region string) (string, error) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if !phonenumbers.GetSupportedRegions()[region] {
		return "", fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}

	example := phonenumbers.GetExampleNumberForType(region, phonenumbers.MOBILE)
	if example == nil {
		example = phonenumbers.GetExampleNumber(region)
	}
	if example == nil {
		return "", fmt.Errorf("%w: no example number for %q", ErrUnknownRegion, region)
	}

	formatted := phonenumbers.Format(example, phonenumbers.INTERNATIONAL)
	prefix := fmt.Sprintf("+%d", example.GetCountryCode())
	rest, _ := strings.CutPrefix(formatted, prefix)

	return prefix + strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return Digit
		}
		return r
	}, rest), nil
}

// MaskPhone applies the PhoneMask of region to input. The country code may
// be omitted from input.
//
//	MaskPhone("US", "6502530000") // "+1 650-253-0000"
func MaskPhone(region, input string) (string, error) {
	m, err := PhoneMask(region)
	if err != nil {
		return "", err
	}
	return Apply(m, input), nil
}

// FormatPhone parses input as a number of region (or any region when input
// starts with "+") and renders it in format.
func FormatPhone(input, region string, format PhoneFormat) (string, error) {
	num, err := phonenumbers.Parse(input, strings.ToUpper(region))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPhone, input)
	}
	return phonenumbers.Format(num, format), nil
}

// Region returns the ISO 3166 region of an international number.
func Region(input string) (string, error) {
	num, err := phonenumbers.Parse(input, "")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}
	region := phonenumbers.GetRegionCodeForNumber(num)
	if region == "" || region == "ZZ" {
		return "", fmt.Errorf("%w: no region for %s", ErrInvalidPhone, input)
	}
	return region, nil
}
