// internal/domain/location/entity.go
package location

// Location is one restaurant location as supplied by the platform API
type Location struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Hours     string  `json:"hours,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	IsActive  bool    `json:"is_active"`
}
