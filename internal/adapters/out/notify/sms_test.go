package notify_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chipdrop/internal/adapters/out/notify"
	"chipdrop/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewaySMSSender_SendSMS_PostsMessage(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender := notify.NewGatewaySMSSender(server.URL, "test-key", server.Client())
	err := sender.SendSMS(t.Context(), ports.SMSMessage{
		To:   "+15035550199",
		Body: "Your chip delivery is scheduled",
	})
	require.NoError(t, err)

	assert.Equal(t, "/messages", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "+15035550199", gotBody["to"])
	assert.Equal(t, "Your chip delivery is scheduled", gotBody["body"])
}

func TestGatewaySMSSender_SendSMS_NoAPIKeyOmitsAuthorization(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := notify.NewGatewaySMSSender(server.URL, "", server.Client())
	err := sender.SendSMS(t.Context(), ports.SMSMessage{To: "+15035550199", Body: "hi"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestGatewaySMSSender_SendSMS_GatewayErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	sender := notify.NewGatewaySMSSender(server.URL, "test-key", server.Client())
	err := sender.SendSMS(t.Context(), ports.SMSMessage{To: "+15035550199", Body: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestGatewaySMSSender_SendSMS_GatewayUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // shut down before sending

	sender := notify.NewGatewaySMSSender(server.URL, "test-key", nil)
	err := sender.SendSMS(t.Context(), ports.SMSMessage{To: "+15035550199", Body: "hi"})
	require.Error(t, err)
}
