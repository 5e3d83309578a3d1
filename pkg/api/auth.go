package api

// TokenHeader is the request header carrying the session token.
// The value is the token itself, without a "Bearer " prefix.
const TokenHeader = "Token"

// Response is the uniform envelope for error responses from the API.
// Both auth gates terminate requests with this shape.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// UserProfile is the public view of a user, safe to return to clients
// and to persist in the client session blob. Never carries the password hash.
type UserProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     int    `json:"role"`
}

// RegisterRequest is the body of POST /api/v1/auth/register
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned on successful registration
type RegisterResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    UserProfile `json:"user"`
}

// LoginRequest is the body of POST /api/v1/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the signed session token on successful login
type LoginResponse struct {
	Success   bool        `json:"success"`
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expires_in"` // seconds
	User      UserProfile `json:"user"`
}
