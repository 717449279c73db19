package notifications

import (
	"context"

	"github.com/9ssi7/exponent"
)

// PushSender is whatever delivers Expo messages; tests swap in a recorder.
type PushSender interface {
	Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error)
	PublishSingle(ctx context.Context, msg *exponent.Message) ([]*exponent.MessageResponse, error)
}
