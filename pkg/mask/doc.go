// Package mask formats user input with input masks.
//
// A mask is a template where 9 accepts a digit, a accepts a letter, * accepts
// either, and every other rune is a literal:
//
//	mask.Apply("9999 9999 9999 9999", "4111111111111111") // "4111 1111 1111 1111"
//	mask.Unmask("(999) 999-9999", "(650) 253-0000")       // "6502530000"
//
// Phone masks are derived from libphonenumber metadata
// (github.com/nyaruka/phonenumbers), so every supported region gets a mask
// matching its mobile number layout.
package mask
