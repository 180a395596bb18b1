// Package notifiersvc implements the submission-created side channels.
// Two alternative strategies exist behind the submission.Notifier interface:
// a formatted email to the fixed operator address and a push fan-out to every
// registered device. Config decides which are active; both are best-effort.
package notifiersvc

import (
	"context"
	"net/mail"

	"github.com/trezcool/adxsetup/core"
	"github.com/trezcool/adxsetup/core/submission"
)

const submissionEmailSubject = "New ADX Setup Submission"

type emailNotifier struct {
	mailSvc core.EmailService
	to      mail.Address
}

var _ submission.Notifier = (*emailNotifier)(nil)

func NewEmailNotifier(conf *core.Config, mailSvc core.EmailService) *emailNotifier {
	return &emailNotifier{
		mailSvc: mailSvc,
		to:      conf.OperatorEmail(),
	}
}

func (n *emailNotifier) SubmissionCreated(_ context.Context, sub submission.Submission) {
	n.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{n.to},
		Subject:      submissionEmailSubject,
		TemplateName: "new_submission",
		TemplateData: sub,
	})
}
