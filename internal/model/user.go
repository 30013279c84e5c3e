package model

// User is the logged-in identity. It has no identity beyond its fields;
// logging in again simply replaces it.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email" masq:"secret"`
}
