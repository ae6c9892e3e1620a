// internal/domain/checkout/intent.go
package checkout

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/restaurant-storefront/internal/domain/cart"
	"github.com/your-org/restaurant-storefront/internal/domain/customer"
)

// CustomerInfo is the contact block recorded on the order
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes,omitempty"`
}

// Intent is the resumable checkout snapshot stashed immediately before the
// browser navigates to the hosted payment page. The post-payment return
// handler consumes it exactly once to create the durable order.
type Intent struct {
	CustomerInfo CustomerInfo    `json:"customer_info"`
	CustomerID   string          `json:"customer_id,omitempty"`
	LocationID   string          `json:"location_id"`
	Items        []cart.LineItem `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	IsGuest      bool            `json:"is_guest"`
}

// buildCustomerInfo assembles the contact block with the documented
// fallbacks: name through first+last, then email, then "Customer"; phone
// through "Not provided".
func buildCustomerInfo(cust *customer.Customer, notes string) CustomerInfo {
	return CustomerInfo{
		Name:  cust.DisplayName(),
		Email: cust.Email,
		Phone: cust.ContactPhone(),
		Notes: notes,
	}
}
