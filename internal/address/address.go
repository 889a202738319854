package address

// Address is a shipping address owned by a user.
type Address struct {
	AddressID  int    `json:"addressID"`
	UserID     int    `json:"userID"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}
