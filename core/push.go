package core

import "context"

type (
	// PushMessage is a notification fanned out to a batch of device tokens.
	PushMessage struct {
		Title  string
		Body   string
		Tokens []string
	}

	// PushResult is the delivery outcome for a single token. A failed token
	// never blocks delivery to the others.
	PushResult struct {
		Token string
		Err   error
	}

	// PushService is any service that can deliver push notifications.
	PushService interface {
		Send(ctx context.Context, msg PushMessage) []PushResult
	}
)
