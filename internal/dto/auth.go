package dto

// SessionResponse is returned on login and session probes.
type SessionResponse struct {
	Token string `json:"token,omitempty"`
	Email string `json:"email"`
}
