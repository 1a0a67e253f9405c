package requests

// SignUpFormRequest is a browser form post of the sign-up screen.
type SignUpFormRequest struct {
	ScreenID        string `schema:"-" uri:"screen_id"`
	Username        string `schema:"username"`
	Password        string `schema:"password"`
	ConfirmPassword string `schema:"confirmPassword"`
}
