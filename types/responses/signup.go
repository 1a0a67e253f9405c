package responses

import "github.com/2HgO/signup-go/models"

// SignUpResult is the outcome of one account-creation call. Exactly one
// of Response and Error is set.
type SignUpResult struct {
	Response *models.Account `json:"response,omitempty"`
	Error    *SignUpError    `json:"error,omitempty"`
}

type SignUpError struct {
	Message string `json:"message"`
}

func Succeeded(account *models.Account) *SignUpResult {
	return &SignUpResult{Response: account}
}

func Failed(message string) *SignUpResult {
	return &SignUpResult{Error: &SignUpError{Message: message}}
}
