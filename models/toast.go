package models

type ToastLevel string

const (
	Success_ToastLevel ToastLevel = "success"
	Error_ToastLevel   ToastLevel = "error"
)

func (t ToastLevel) String() string {
	return string(t)
}

type Toast struct {
	Level ToastLevel `json:"level"`
	Text  string     `json:"text"`
}
