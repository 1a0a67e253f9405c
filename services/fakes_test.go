package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/2HgO/signup-go/forms"
	"github.com/2HgO/signup-go/types/requests"
	"github.com/2HgO/signup-go/types/responses"
)

type fakeAPI struct {
	mu      sync.Mutex
	calls   []*requests.SignUpRequest
	result  *responses.SignUpResult
	entered chan struct{}
	release chan struct{}
}

func (f *fakeAPI) Signup(ctx context.Context, req *requests.SignUpRequest) *responses.SignUpResult {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.result
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// blocking makes Signup wait for release after signalling entered.
func (f *fakeAPI) blocking() *fakeAPI {
	f.entered = make(chan struct{}, 1)
	f.release = make(chan struct{})
	return f
}

type recordedNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (r *recordedNotifier) Success(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, text)
}

func (r *recordedNotifier) Error(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, text)
}

type recordedNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordedNavigator) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func testMessages(t *testing.T) *forms.Messages {
	t.Helper()
	messages, err := forms.NewMessages("ko")
	require.NoError(t, err)
	return messages
}

func newTestScreenService(t *testing.T, api AccountAPI) (*screenService, NotificationService) {
	t.Helper()
	log := zaptest.NewLogger(t)
	messages := testMessages(t)
	notifications := NewNotificationService(log)
	svc := NewScreenService(api, notifications, forms.NewRules(messages), messages, log)
	return svc.(*screenService), notifications
}
