package notifiersvc

import (
	"context"
	"fmt"

	"github.com/trezcool/adxsetup/core"
	"github.com/trezcool/adxsetup/core/device"
	"github.com/trezcool/adxsetup/core/submission"
)

const (
	submissionPushTitle = "New Submission"
	submissionPushBody  = "Someone has submitted a new ADX setup request"
)

type pushNotifier struct {
	pushSvc core.PushService
	devSvc  *device.Service
	logger  core.Logger
}

var _ submission.Notifier = (*pushNotifier)(nil)

func NewPushNotifier(pushSvc core.PushService, devSvc *device.Service, logger core.Logger) *pushNotifier {
	return &pushNotifier{
		pushSvc: pushSvc,
		devSvc:  devSvc,
		logger:  logger,
	}
}

func (n *pushNotifier) SubmissionCreated(ctx context.Context, _ submission.Submission) {
	tokens, err := n.devSvc.QueryTokens(ctx)
	if err != nil {
		n.logger.Error(fmt.Sprintf("loading device tokens: %v", err), err)
		return
	}
	if len(tokens) == 0 {
		return
	}
	n.pushSvc.Send(ctx, core.PushMessage{
		Title:  submissionPushTitle,
		Body:   submissionPushBody,
		Tokens: tokens,
	})
}
