package pushsvc

import (
	"context"
	"log"
	"sync"

	"github.com/trezcool/adxsetup/core"
)

var (
	SentMessages = make([]core.PushMessage, 0)
	mu           sync.Mutex
)

// ClearSentMessages resets the sent-message record between tests.
func ClearSentMessages() {
	mu.Lock()
	SentMessages = SentMessages[:0]
	mu.Unlock()
}

// GetSentMessages returns a copy of the sent-message record.
func GetSentMessages() []core.PushMessage {
	mu.Lock()
	defer mu.Unlock()
	return append([]core.PushMessage(nil), SentMessages...)
}

type consoleService struct {
	disableOutput bool
}

var _ core.PushService = (*consoleService)(nil)

func NewConsoleService() core.PushService {
	return &consoleService{}
}

// NewConsoleServiceMock suppresses output; tests inspect SentMessages.
func NewConsoleServiceMock() core.PushService {
	return &consoleService{disableOutput: true}
}

func (svc *consoleService) Send(_ context.Context, msg core.PushMessage) []core.PushResult {
	if !svc.disableOutput {
		log.Printf("push: %q / %q -> %d device(s)", msg.Title, msg.Body, len(msg.Tokens))
	}
	mu.Lock()
	SentMessages = append(SentMessages, msg)
	mu.Unlock()

	results := make([]core.PushResult, 0, len(msg.Tokens))
	for _, token := range msg.Tokens {
		results = append(results, core.PushResult{Token: token})
	}
	return results
}
