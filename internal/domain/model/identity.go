package model

// Identity is the authenticated caller resolved by the session gate.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
