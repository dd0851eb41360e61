// Package notify composes and delivers SMS alert messages.
package notify

import (
	"context"
	"errors"
)

// ErrDeliveryFailed indicates the SMS provider rejected or failed a send.
var ErrDeliveryFailed = errors.New("sms delivery failed")

// Sender delivers a composed message to a phone number in E.164 format.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}
