package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt"
)

func Test_operatorApi_login(t *testing.T) {
	resetDB(t)

	op := createOperator(t, "boss@test.cd", true)
	deactivated := createOperator(t, "gone@test.cd", false)
	_ = deactivated

	tests := []httpTest{
		{
			name: "missing fields", body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{
				"email":    "this field is required",
				"password": "this field is required",
			}),
		},
		{
			name: "unknown email", body: marshallObj(t, LoginRequest{Email: "who@test.cd", Password: "s3cr3t"}),
			wantCode: http.StatusBadRequest, wantData: marshallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", body: marshallObj(t, LoginRequest{Email: op.Email, Password: "nope"}),
			wantCode: http.StatusBadRequest, wantData: marshallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "deactivated account", body: marshallObj(t, LoginRequest{Email: "gone@test.cd", Password: "s3cr3t"}),
			wantCode: http.StatusForbidden, wantData: marshallObj(t, httpErr{Error: "account deactivated"}),
		},
		{
			name: "ok", body: marshallObj(t, LoginRequest{Email: op.Email, Password: "s3cr3t"}),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/operators/login", tt.body)
			app.ServeHTTP(rec, req)
			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("code = %v, want %v; body = %s", rec.Code, tt.wantCode, rec.Body.String())
			}

			var res LoginResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
				t.Fatalf("unmarshalling body: %v", err)
			}
			if res.Token == "" {
				t.Fatal("no token in response")
			}

			claims := new(Claims)
			_, err := jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (interface{}, error) {
				return []byte(conf.SecretKey), nil
			})
			if err != nil {
				t.Fatalf("parsing token: %v", err)
			}
			if claims.Subject != op.ID || claims.Email != op.Email {
				t.Errorf("claims = %+v", claims)
			}
			if !claims.IsAdmin {
				t.Error("claims.IsAdmin = false")
			}
		})
	}
}

func Test_operatorApi_tokenRefresh(t *testing.T) {
	resetDB(t)

	op := createOperator(t, "refresh@test.cd", true)
	token := getToken(t, op)

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/operators/token-refresh")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)}, rec)
	})

	t.Run("ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/operators/token-refresh", token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body = %s", rec.Code, rec.Body.String())
		}
		var res LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if res.Token == "" {
			t.Fatal("no token in response")
		}
	})
}

func Test_operatorApi_current(t *testing.T) {
	resetDB(t)

	op := createOperator(t, "me@test.cd", true)
	token := getToken(t, op)

	req, rec := newAuthRequest(http.MethodGet, "/v1/operators/current", token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, op)}, rec)
}
