package usecase

import (
	"fmt"
	"regexp"
	"strings"

	domainErrors "github.com/amvenit/amvenit/internal/domain/errors"
)

var roMobile = regexp.MustCompile(`^07\d{8}$`)

// NormalizePhone maps human-entered Romanian mobile formats (07xxxxxxxx,
// +407xxxxxxxx, 00407xxxxxxxx) to the canonical +407xxxxxxxx form. It must be
// applied before any phone is persisted, compared or used to build a contact
// link. The function is idempotent.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	if strings.HasPrefix(d, "0040") {
		d = "0" + d[4:]
	} else if strings.HasPrefix(d, "40") {
		d = "0" + d[2:]
	}

	if !roMobile.MatchString(d) {
		return "", fmt.Errorf("%w: telefon invalid, folosește format RO: 07xxxxxxxx sau +40/0040", domainErrors.ErrValidation)
	}

	return "+4" + d, nil
}

// MaskPhone redacts the middle of a phone number for unauthenticated viewers,
// keeping the first 4 and last 3 characters visible. Masking happens at
// display time only; the stored value stays intact.
func MaskPhone(phone string) string {
	if len(phone) <= 7 {
		return phone
	}
	return phone[:4] + strings.Repeat("*", len(phone)-7) + phone[len(phone)-3:]
}
