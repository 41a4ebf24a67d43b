package domain

// Identity is the verified caller extracted from a session token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}
