package notifiersvc

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/adxsetup/core"
	"github.com/trezcool/adxsetup/core/device"
	"github.com/trezcool/adxsetup/core/submission"
	emailsvc "github.com/trezcool/adxsetup/services/email"
	logsvc "github.com/trezcool/adxsetup/services/logger"
	pushsvc "github.com/trezcool/adxsetup/services/push"
	inmemdb "github.com/trezcool/adxsetup/storage/database/inmem"
)

func testConf() *core.Config {
	conf := &core.Config{TestMode: true, AppName: "ADX Setup"}
	conf.Mail.DefaultFromEmail = "noreply@test.cd"
	conf.Mail.OperatorEmail = "lectureradx@gmail.com"
	return conf
}

func testLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags), conf)
	logger.Enable(false)
	return logger
}

func Test_emailNotifier_SubmissionCreated(t *testing.T) {
	conf := testConf()
	core.ParseEmailTemplates(conf, testLogger(conf))
	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	notifier := NewEmailNotifier(conf, mailSvc)

	sub := submission.Submission{
		ID:                "sub-1",
		WordpressURL:      "https://blog.test.cd",
		WordpressUsername: "admin",
		WhatsappNumber:    "+2348012345678",
		Package:           "premium",
		CreatedAt:         time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC),
	}

	emailsvc.ClearSentMessages()
	notifier.SubmissionCreated(context.Background(), sub)

	sent := emailsvc.GetSentMessages()
	require.Len(t, sent, 1)
	msg := sent[0]

	assert.Equal(t, "New ADX Setup Submission", msg.Subject)
	require.Len(t, msg.To, 1)
	assert.Equal(t, "lectureradx@gmail.com", msg.To[0].Address)

	for _, want := range []string{
		"WordPress URL: https://blog.test.cd",
		"Username: admin",
		"Package: premium",
		"WhatsApp Number: +2348012345678",
		"Network Code: Not provided",
		"Timestamp: Mar 5, 2024 2:30:00 PM",
	} {
		assert.Contains(t, msg.TextContent, want)
	}
	assert.Contains(t, msg.HTMLContent, "<strong>Network Code:</strong> Not provided")
}

func Test_emailNotifier_SubmissionCreated_withNetworkCode(t *testing.T) {
	conf := testConf()
	core.ParseEmailTemplates(conf, testLogger(conf))
	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	notifier := NewEmailNotifier(conf, mailSvc)

	emailsvc.ClearSentMessages()
	notifier.SubmissionCreated(context.Background(), submission.Submission{
		WordpressURL: "https://blog.test.cd",
		NetworkCode:  "12345678",
		CreatedAt:    time.Now().UTC(),
	})

	sent := emailsvc.GetSentMessages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].TextContent, "Network Code: 12345678")
}

func Test_pushNotifier_SubmissionCreated(t *testing.T) {
	conf := testConf()
	devSvc := device.NewService(inmemdb.NewDeviceRepository(inmemdb.Open()))
	pushSvc := pushsvc.NewConsoleServiceMock()

	notifier := NewPushNotifier(pushSvc, devSvc, testLogger(conf))
	ctx := context.Background()

	// no registered devices: nothing goes out
	pushsvc.ClearSentMessages()
	notifier.SubmissionCreated(ctx, submission.Submission{})
	assert.Empty(t, pushsvc.GetSentMessages())

	_, err := devSvc.Register(ctx, device.NewToken{Token: "token-1"})
	require.NoError(t, err)
	_, err = devSvc.Register(ctx, device.NewToken{Token: "token-2"})
	require.NoError(t, err)

	notifier.SubmissionCreated(ctx, submission.Submission{})
	sent := pushsvc.GetSentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "New Submission", sent[0].Title)
	assert.Equal(t, "Someone has submitted a new ADX setup request", sent[0].Body)
	assert.Len(t, sent[0].Tokens, 2)
}
