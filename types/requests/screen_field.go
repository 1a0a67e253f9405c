package requests

type ChangeFieldRequest struct {
	ScreenID string `json:"-" uri:"screen_id"`
	Field    string `json:"field" validate:"required,oneof=username password confirmPassword"`
	Value    string `json:"value"`
}

type BlurFieldRequest struct {
	ScreenID string `json:"-" uri:"screen_id"`
	Field    string `json:"field" validate:"required,oneof=username password confirmPassword"`
}
