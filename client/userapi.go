package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/2HgO/signup-go/config"
	"github.com/2HgO/signup-go/errors"
	"github.com/2HgO/signup-go/models"
	"github.com/2HgO/signup-go/types/requests"
	"github.com/2HgO/signup-go/types/responses"
)

const signupPath = "/api/v1/users/signup"

// UserAPI calls the remote user-account API. Every failure, including
// transport errors and timeouts, is folded into the result's Error.
type UserAPI struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewUserAPI(cfg *config.Config, log *zap.Logger) *UserAPI {
	return &UserAPI{
		baseURL: strings.TrimRight(cfg.UserAPIURL, "/"),
		http:    &http.Client{Timeout: cfg.UserAPITimeout},
		log:     log,
	}
}

func (u *UserAPI) Signup(ctx context.Context, req *requests.SignUpRequest) *responses.SignUpResult {
	account, err := u.signup(ctx, req)
	if err != nil {
		u.log.Warn("sign up request failed", zap.String("username", req.Username), zap.Error(err))
		var appErr errors.AppError
		if errors.As(err, &appErr) {
			return responses.Failed(appErr.Message)
		}
		return responses.Failed(err.Error())
	}
	return responses.Succeeded(account)
}

func (u *UserAPI) signup(ctx context.Context, req *requests.SignUpRequest) (*models.Account, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+signupPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("content-type", "application/json")
	httpReq.Header.Set("accept", "application/json")

	res, err := u.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode >= 300 {
		appErr := errors.AppError{}
		if json.Unmarshal(data, &appErr) != nil || appErr.Message == "" {
			appErr.Message = http.StatusText(res.StatusCode)
		}
		appErr.Code = res.StatusCode
		return nil, appErr
	}

	out := new(responses.Response[*models.Account])
	if err = json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("decoding sign up response: %w", err)
	}
	if out.Data == nil {
		return nil, errors.NewFailedDependencyError("empty sign up response")
	}
	return out.Data, nil
}
