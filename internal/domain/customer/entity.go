// internal/domain/customer/entity.go
package customer

import "strings"

// Customer is the authenticated customer's identity as carried by the
// platform's access token. Account storage and token issuance live in the
// external identity service.
type Customer struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// DisplayName returns the customer's name for order records, falling back
// through first+last name, then email, then a generic label.
func (c *Customer) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if name != "" {
		return name
	}
	if c.Email != "" {
		return c.Email
	}
	return "Customer"
}

// ContactPhone returns the customer's phone or a placeholder when absent
func (c *Customer) ContactPhone() string {
	if c.Phone != "" {
		return c.Phone
	}
	return "Not provided"
}
