package models

import "time"

type Account struct {
	ID        string     `json:"id"`
	SN        string     `json:"sn,omitempty"`
	Username  string     `json:"username"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// internal fields
	Password *string `json:"-"`
}
