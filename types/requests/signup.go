package requests

// SignUpRequest is what the sign-up screen hands to the account API.
// The confirmation field never leaves the screen.
type SignUpRequest struct {
	Username string `json:"username" validate:"required,min=6,max=15"`
	Password string `json:"password" validate:"required,min=8"`
}
