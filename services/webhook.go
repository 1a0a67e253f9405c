package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/madflojo/tasks"
	"go.uber.org/zap"

	"github.com/2HgO/signup-go/config"
	"github.com/2HgO/signup-go/models"
)

// WebhookService notifies an external listener about account events.
// Events are delivered in the background; delivery failures are logged.
type WebhookService interface {
	SendAccountCreatedEvent(account *models.Account) (self WebhookService)
}

func NewWebhookService(cfg *config.Config, scheduler *tasks.Scheduler, log *zap.Logger) WebhookService {
	w := &webhookService{
		service:   service{log: log, now: time.Now},
		scheduler: scheduler,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
	if cfg.WebhookURL != "" {
		w.url = &cfg.WebhookURL
	}
	if cfg.WebhookKey != "" {
		w.key = &cfg.WebhookKey
	}
	return w
}

type webhookService struct {
	service
	scheduler *tasks.Scheduler
	client    *http.Client
	url       *string
	key       *string
}

func (w *webhookService) doRequest(url string, body *bytes.Buffer, key *string) (error, bool) {
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return err, false
	}

	if key != nil {
		now := w.now().Unix()
		payload := fmt.Sprintf("%d.%s", now, body.String())
		mac := hmac.New(sha256.New, []byte(*key))
		if _, err := mac.Write([]byte(payload)); err != nil {
			return err, false
		}
		signature := hex.EncodeToString(mac.Sum(nil))
		req.Header.Set("signup-signature", fmt.Sprintf("ts=%d,sig=%s", now, signature))
	}

	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")

	res, err := w.client.Do(req)
	if res != nil {
		defer res.Body.Close()
		resData, _ := io.ReadAll(res.Body)
		w.log.Info("response from callback", zap.String("Response Data", string(resData)))
	}
	return err, (res != nil && res.StatusCode < 300)
}

func (w *webhookService) deliver(eventType models.WebhookEvent, data []byte) func() error {
	return func() error {
		err, ok := w.doRequest(*w.url, bytes.NewBuffer(data), w.key)
		if err != nil {
			w.log.Error("dispatching request", zap.String("Event Type", eventType.String()), zap.Error(err))
			return nil
		}
		if !ok {
			w.log.Warn("callback rejected event", zap.String("Event Type", eventType.String()))
		}
		return nil
	}
}

func (w *webhookService) sendEvent(eventType models.WebhookEvent, eventData any) (self WebhookService) {
	if w.url == nil {
		return w
	}
	w.log.Info("dispatching event...", zap.String("Event Type", eventType.String()))

	data, err := json.Marshal(&models.Webhook{
		Event: eventType,
		Data:  eventData,
	})
	if err != nil {
		w.log.Error("encoding request body", zap.Error(err))
		return w
	}

	_, err = w.scheduler.Add(&tasks.Task{
		Interval: time.Second,
		RunOnce:  true,
		TaskFunc: w.deliver(eventType, data),
	})
	if err != nil {
		w.log.Error("scheduling event", zap.Error(err))
	}
	return w
}

func (w *webhookService) SendAccountCreatedEvent(account *models.Account) (self WebhookService) {
	return w.sendEvent(models.AccountCreated_WebhookEvent, account)
}
