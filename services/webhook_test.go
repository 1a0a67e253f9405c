package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/madflojo/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/2HgO/signup-go/config"
	"github.com/2HgO/signup-go/models"
)

type capturedHook struct {
	body      string
	signature string
}

func newHookListener(t *testing.T) (*httptest.Server, func() []capturedHook) {
	t.Helper()
	var mu sync.Mutex
	var hooks []capturedHook
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		hooks = append(hooks, capturedHook{body: string(body), signature: r.Header.Get("signup-signature")})
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []capturedHook {
		mu.Lock()
		defer mu.Unlock()
		return append([]capturedHook(nil), hooks...)
	}
}

func newTestScheduler(t *testing.T) *tasks.Scheduler {
	t.Helper()
	scheduler := tasks.New()
	t.Cleanup(scheduler.Stop)
	return scheduler
}

func TestSendAccountCreatedEventSigned(t *testing.T) {
	srv, received := newHookListener(t)
	cfg := &config.Config{WebhookURL: srv.URL, WebhookKey: "secret"}
	now := time.Unix(1792238400, 0)

	w := NewWebhookService(cfg, newTestScheduler(t), zaptest.NewLogger(t)).(*webhookService)
	w.now = func() time.Time { return now }

	w.SendAccountCreatedEvent(&models.Account{ID: "acct-1", SN: "c1", Username: "ali/ce"})

	require.Eventually(t, func() bool { return len(received()) == 1 }, 5*time.Second, 50*time.Millisecond)
	hook := received()[0]

	assert.Contains(t, hook.body, `"event":"account.created"`)
	assert.Contains(t, hook.body, `"username":"ali/ce"`)
	assert.NotContains(t, hook.body, "password")

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte(fmt.Sprintf("%d.%s", now.Unix(), hook.body)))
	assert.Equal(t, fmt.Sprintf("ts=%d,sig=%s", now.Unix(), hex.EncodeToString(mac.Sum(nil))), hook.signature)
}

func TestSendAccountCreatedEventUnsigned(t *testing.T) {
	srv, received := newHookListener(t)
	cfg := &config.Config{WebhookURL: srv.URL}

	NewWebhookService(cfg, newTestScheduler(t), zaptest.NewLogger(t)).
		SendAccountCreatedEvent(&models.Account{ID: "acct-2", Username: "bob123"})

	require.Eventually(t, func() bool { return len(received()) == 1 }, 5*time.Second, 50*time.Millisecond)
	assert.Empty(t, received()[0].signature)
}

func TestSendAccountCreatedEventDisabled(t *testing.T) {
	scheduler := newTestScheduler(t)

	NewWebhookService(&config.Config{}, scheduler, zaptest.NewLogger(t)).
		SendAccountCreatedEvent(&models.Account{ID: "acct-3"})

	assert.Empty(t, scheduler.Tasks())
}

func TestWebhookEventString(t *testing.T) {
	assert.Equal(t, "account.created", models.AccountCreated_WebhookEvent.String())
}
