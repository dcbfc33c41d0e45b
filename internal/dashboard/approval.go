package dashboard

import wire "partnerhub/pkg/models"

// Approved reports whether number is on the approved list. Numbers match
// exactly, with no normalization.
func Approved(number string, recipients []wire.RecipientRecord) bool {
	for _, r := range recipients {
		if r.PhoneNumber == number {
			return true
		}
	}
	return false
}
