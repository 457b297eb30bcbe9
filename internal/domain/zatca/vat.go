package zatca

import (
	"fmt"
	"unicode"
)

// vatNumberLen is the length of a Saudi VAT registration number.
const vatNumberLen = 15

// ValidateVATNumber checks that a VAT registration number is exactly fifteen
// digits. ZATCA issues numbers beginning and ending with 3, but registrations
// predating the current scheme exist, so only length and digits are enforced.
func ValidateVATNumber(vatNumber string) error {
	if vatNumber == "" {
		return fmt.Errorf("zatca: VAT number is required")
	}
	for _, r := range vatNumber {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("zatca: VAT number must contain only digits")
		}
	}
	if len(vatNumber) != vatNumberLen {
		return fmt.Errorf("zatca: VAT number must be %d digits, got %d", vatNumberLen, len(vatNumber))
	}
	return nil
}
