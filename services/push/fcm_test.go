package pushsvc

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/trezcool/adxsetup/core"
	logsvc "github.com/trezcool/adxsetup/services/logger"
)

func Test_gatewayService_Send(t *testing.T) {
	var (
		mu       sync.Mutex
		received []gatewayPayload
	)
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "key=test-server-key" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}

		var payload gatewayPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		mu.Lock()
		received = append(received, payload)
		mu.Unlock()

		if payload.To == "bad-token" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("InvalidRegistration"))
		}
	}))
	defer gateway.Close()

	conf := &core.Config{TestMode: true}
	conf.Push.Endpoint = gateway.URL
	conf.Push.ServerKey = "test-server-key"
	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags), conf)
	logger.Enable(false)

	svc := NewGatewayService(conf, logger)
	results := svc.Send(context.Background(), core.PushMessage{
		Title:  "New Submission",
		Body:   "Someone has submitted a new ADX setup request",
		Tokens: []string{"token-1", "bad-token", "token-2"},
	})

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	outcomes := make(map[string]error, len(results))
	for _, res := range results {
		outcomes[res.Token] = res.Err
	}
	if outcomes["token-1"] != nil || outcomes["token-2"] != nil {
		t.Errorf("good tokens failed: %v", outcomes)
	}
	if outcomes["bad-token"] == nil {
		t.Error("bad token did not fail")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 3 {
		t.Fatalf("gateway received %d payloads, want 3", len(received))
	}
	for _, payload := range received {
		if payload.Notification.Title != "New Submission" {
			t.Errorf("title = %q", payload.Notification.Title)
		}
		if payload.Notification.Body != "Someone has submitted a new ADX setup request" {
			t.Errorf("body = %q", payload.Notification.Body)
		}
	}
}
