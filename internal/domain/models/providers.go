// internal/domain/models/providers.go
package models

// Identity providers a User record can carry.
const (
	ProviderLocal    = "local"
	ProviderGoogle   = "google"
	ProviderLinkedIn = "linkedin"
)

// ValidProvider reports whether p is a known provider value.
func ValidProvider(p string) bool {
	switch p {
	case ProviderLocal, ProviderGoogle, ProviderLinkedIn:
		return true
	}
	return false
}
