// Package pushsvc implements push-notification delivery.
//
// The gateway implementation POSTs to the legacy push endpoint once per
// registered token with a key-based authorization header. Delivery is
// best-effort: each token gets an independent outcome and one failure never
// blocks the rest of the batch.
package pushsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/adxsetup/core"
)

type gatewayService struct {
	endpoint string
	key      string
	client   *http.Client
	logger   core.Logger
}

var _ core.PushService = (*gatewayService)(nil)

func NewGatewayService(conf *core.Config, logger core.Logger) *gatewayService {
	return &gatewayService{
		endpoint: conf.Push.Endpoint,
		key:      conf.Push.ServerKey,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

type gatewayPayload struct {
	To           string `json:"to"`
	Notification struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	} `json:"notification"`
}

func (svc *gatewayService) Send(ctx context.Context, msg core.PushMessage) []core.PushResult {
	results := make([]core.PushResult, len(msg.Tokens))

	var wg sync.WaitGroup
	for i, token := range msg.Tokens {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			results[i] = core.PushResult{Token: token, Err: svc.send(ctx, token, msg.Title, msg.Body)}
		}(i, token)
	}
	wg.Wait()

	for _, res := range results {
		if res.Err != nil {
			svc.logger.Error(fmt.Sprintf("sending push to %s: %v", res.Token, res.Err), res.Err)
		}
	}
	return results
}

func (svc *gatewayService) send(ctx context.Context, token, title, body string) error {
	payload := gatewayPayload{To: token}
	payload.Notification.Title = title
	payload.Notification.Body = body

	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshalling push payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.endpoint, bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "building push request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+svc.key)

	res, err := svc.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "posting to push gateway")
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode >= http.StatusBadRequest {
		resBody, _ := io.ReadAll(io.LimitReader(res.Body, 1<<10))
		return errors.Errorf("push gateway status %d: %s", res.StatusCode, resBody)
	}
	return nil
}
