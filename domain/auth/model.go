package auth

// LoginRequest is the admin login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session token. login_time lets the admin client
// mirror the 24h session-expiry check locally.
type LoginResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	RoleID    int    `json:"role_id"`
	LoginTime int64  `json:"login_time"`
}

// User is the admin operator row used for credential checks.
type User struct {
	ID           int64  `db:"id"`
	Email        string `db:"email"`
	Password     string `db:"password"`
	RoleID       int    `db:"role_id"`
	TokenVersion int64  `db:"token_version"`
}
