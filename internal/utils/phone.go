package utils

import (
	"regexp"
	"strings"
)

var (
	nonDigits = regexp.MustCompile(`\D`)
	// Romanian mobile/landline: optional 40 country code, optional leading
	// zero, then nine digits. The nine-digit local part is the canonical form.
	romanianPhone = regexp.MustCompile(`^(?:40)?0?([1-9]\d{8})$`)
)

// NormalizePhone reduces a phone number to its canonical stored form. The
// same normalization runs on every read and write of the reward ledger;
// matching silently fails otherwise.
//
// "+40 712-345-678", "0712345678" and "40712345678" all normalize to
// "712345678". The function is idempotent.
func NormalizePhone(raw string) string {
	digits := nonDigits.ReplaceAllString(strings.TrimSpace(raw), "")
	if digits == "" {
		return ""
	}
	// "00" is the international dialing prefix, same as "+".
	digits = strings.TrimPrefix(digits, "00")
	// A bare nine-digit number is already a local mobile number.
	if len(digits) == 9 {
		return digits
	}
	if m := romanianPhone.FindStringSubmatch(digits); m != nil {
		return m[1]
	}
	// Unrecognized country code: keep the digits. Leading zeros must not
	// survive, or re-normalizing the stored value would change it again.
	return strings.TrimLeft(digits, "0")
}
