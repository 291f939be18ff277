package domain

// Session is what a successful login or refresh returns: the account's
// public fields plus a freshly issued token pair. The refresh token here is
// the only copy the caller will ever see for this rotation.
type Session struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
