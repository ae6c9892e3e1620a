// internal/domain/cart/guard.go
package cart

// CrossLocationMessage is shown when a mutation targets a location other
// than the one the cart is committed to.
const CrossLocationMessage = "Your cart contains items from a different location. Please clear your cart or choose the same location."

// Validation is the location guard's verdict on a prospective mutation
type Validation struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// validateLocation checks a candidate fulfillment location against the
// cart's committed location. Rules, in order: an empty cart accepts any
// location; an unset committed location accepts any (should not occur while
// the cart is non-empty); a matching location is accepted; anything else is
// rejected. Identifiers are compared as opaque strings.
func validateLocation(itemCount int, committedLocationID, candidateLocationID string) Validation {
	if itemCount == 0 {
		return Validation{Valid: true}
	}

	if committedLocationID == "" {
		return Validation{Valid: true}
	}

	if committedLocationID == candidateLocationID {
		return Validation{Valid: true}
	}

	return Validation{
		Valid:   false,
		Message: CrossLocationMessage,
	}
}
