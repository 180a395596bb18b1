package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/adxsetup/core/device"
	pushsvc "github.com/trezcool/adxsetup/services/push"
)

func Test_deviceApi_register(t *testing.T) {
	resetDB(t)

	t.Run("missing token", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/devices", []byte(`{}`))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"token": "this field is required"}),
		}, rec)
	})

	t.Run("registered", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/devices", marshallObj(t, device.NewToken{Token: "fcm-token-1"}))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; body = %s", rec.Code, rec.Body.String())
		}
		var tok device.Token
		if err := json.Unmarshal(rec.Body.Bytes(), &tok); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if tok.ID == "" || tok.Token != "fcm-token-1" || tok.CreatedAt.IsZero() {
			t.Errorf("token = %+v", tok)
		}

		tokens, err := devSvc.QueryTokens(context.Background())
		if err != nil {
			t.Fatalf("QueryTokens(): %v", err)
		}
		if len(tokens) != 1 || tokens[0] != "fcm-token-1" {
			t.Errorf("tokens = %v", tokens)
		}
	})
}

func Test_notifyApi_broadcast(t *testing.T) {
	resetDB(t)

	admin := createOperator(t, "notify@test.cd", true)
	adminToken := getToken(t, admin)

	body := marshallObj(t, BroadcastRequest{Title: "Maintenance", Body: "Back at noon"})

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/notify", body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)}, rec)
	})

	t.Run("missing fields", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/notify", adminToken, []byte(`{}`))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{
				"title": "this field is required",
				"body":  "this field is required",
			}),
		}, rec)
	})

	t.Run("no registered devices", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/notify", adminToken, body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusOK,
			wantData: marshallObj(t, BroadcastResponse{Message: "No devices registered for notifications"}),
		}, rec)
	})

	t.Run("broadcast", func(t *testing.T) {
		if _, err := devSvc.Register(context.Background(), device.NewToken{Token: "device-1"}); err != nil {
			t.Fatalf("Register(): %v", err)
		}
		if _, err := devSvc.Register(context.Background(), device.NewToken{Token: "device-2"}); err != nil {
			t.Fatalf("Register(): %v", err)
		}

		req, rec := newAuthRequest(http.MethodPost, "/v1/notify", adminToken, body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusOK,
			wantData: marshallObj(t, BroadcastResponse{Message: "Notification sent", Delivered: 2}),
		}, rec)

		sent := pushsvc.GetSentMessages()
		if len(sent) != 1 {
			t.Fatalf("sent %d push messages, want 1", len(sent))
		}
		if sent[0].Title != "Maintenance" || len(sent[0].Tokens) != 2 {
			t.Errorf("push = %+v", sent[0])
		}
	})
}
