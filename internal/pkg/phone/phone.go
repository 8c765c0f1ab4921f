package phone

import (
	"fmt"
	"strings"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
)

// nsnLength is the national significant number length for Indian mobiles.
const nsnLength = 10

// Normalize reduces a user-supplied phone number to the national significant
// number: digits only, country prefix stripped. All stores and OTP keys use
// this form so "+91 98765-43210" and "9876543210" address the same record.
func Normalize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > nsnLength {
		digits = digits[len(digits)-nsnLength:]
	}
	if len(digits) != nsnLength {
		return "", fmt.Errorf("phone number must have %d digits: %w", nsnLength, domain.ErrBadRequest)
	}
	return digits, nil
}
