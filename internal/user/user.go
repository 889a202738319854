package user

// User is a bookstore account. Password holds the bcrypt hash and is
// stripped before the struct leaves the API.
type User struct {
	ID        int    `json:"userID"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
