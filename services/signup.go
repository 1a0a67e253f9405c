package services

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/2HgO/signup-go/forms"
	"github.com/2HgO/signup-go/types/requests"
	"github.com/2HgO/signup-go/types/responses"
)

// AccountAPI creates user accounts. Failures of any kind are reported in
// the result's Error, never as a Go error.
type AccountAPI interface {
	Signup(context.Context, *requests.SignUpRequest) *responses.SignUpResult
}

type Notifier interface {
	Success(text string)
	Error(text string)
}

type Navigator interface {
	Navigate(path string)
}

// SubmitCoordinator runs at most one account-creation call at a time for a
// single screen and routes the result to the notifier and navigator.
type SubmitCoordinator struct {
	api       AccountAPI
	notifier  Notifier
	navigator Navigator
	messages  *forms.Messages
	alive     func() bool
	log       *zap.Logger

	isRequest atomic.Bool
}

func NewSubmitCoordinator(api AccountAPI, notifier Notifier, navigator Navigator, messages *forms.Messages, alive func() bool, log *zap.Logger) *SubmitCoordinator {
	if alive == nil {
		alive = func() bool { return true }
	}
	return &SubmitCoordinator{
		api:       api,
		notifier:  notifier,
		navigator: navigator,
		messages:  messages,
		alive:     alive,
		log:       log,
	}
}

func (c *SubmitCoordinator) IsRequest() bool {
	return c.isRequest.Load()
}

// Submit reports false when a call was already outstanding and this one
// was dropped.
func (c *SubmitCoordinator) Submit(ctx context.Context, req *requests.SignUpRequest) bool {
	if !c.isRequest.CompareAndSwap(false, true) {
		c.log.Debug("sign up already in flight, dropping submit", zap.String("username", req.Username))
		return false
	}
	res := c.api.Signup(ctx, req)
	c.isRequest.Store(false)

	if !c.alive() {
		c.log.Info("screen gone before sign up completed, ignoring result", zap.String("username", req.Username))
		return true
	}
	if res == nil {
		c.log.Error("account api returned no result", zap.String("username", req.Username))
		return true
	}

	if res.Response != nil {
		c.log.Info("sign up succeeded", zap.String("username", req.Username))
		c.notifier.Success(c.messages.Sprintf(forms.MsgSignUpSucceeded))
		c.navigator.Navigate(SignInPath)
	}
	if res.Error != nil {
		c.log.Info("sign up failed", zap.String("username", req.Username), zap.String("reason", res.Error.Message))
		c.notifier.Error(res.Error.Message)
	}
	return true
}
