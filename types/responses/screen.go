package responses

type FieldState struct {
	Touched bool   `json:"touched"`
	Error   string `json:"error,omitempty"`
}

type ScreenState struct {
	ID        string                `json:"id"`
	Username  string                `json:"username"`
	Fields    map[string]FieldState `json:"fields"`
	IsRequest bool                  `json:"is_request"`
	Location  string                `json:"location,omitempty"`
}
