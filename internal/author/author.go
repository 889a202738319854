package author

// Author is a catalog author row.
type Author struct {
	AuthorID int    `json:"authorID"`
	Name     string `json:"name"`
	Bio      string `json:"bio,omitempty"`
}
