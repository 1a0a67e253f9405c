package models

import "encoding/json"

type Webhook struct {
	Event WebhookEvent `json:"event"`
	Data  any          `json:"data"`
}

type WebhookEvent uint8

const (
	AccountCreated_WebhookEvent WebhookEvent = iota + 1
)

func (w WebhookEvent) String() string {
	switch w {
	case AccountCreated_WebhookEvent:
		return "account.created"
	default:
		panic("unreachable")
	}
}

func (w WebhookEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}
