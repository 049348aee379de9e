package model

// User is an account as returned by the user-listing endpoint.
type User struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Ref projects the user onto the reference stored in events.
func (u User) Ref() ParticipantRef {
	return ParticipantRef{ID: u.ID, FullName: u.FullName, Email: u.Email}
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the credential triple returned on successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID string `json:"userId"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}
