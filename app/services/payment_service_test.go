package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignIsDeterministic(t *testing.T) {
	a := sign("secret", "gw_AMB-1_100", "pay_123")
	b := sign("secret", "gw_AMB-1_100", "pay_123")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // hex SHA-256
}

func TestSignMatchesGatewayContract(t *testing.T) {
	// HMAC-SHA256 over "orderId|paymentId".
	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("gw_AMB-1_100|pay_123"))
	want := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, sign("secret", "gw_AMB-1_100", "pay_123"))
}

func TestVerifySignature(t *testing.T) {
	t.Setenv("PAYMENT_KEY_SECRET", "test-secret")

	good := sign("test-secret", "gw_AMB-1_100", "pay_123")
	assert.True(t, VerifySignature("gw_AMB-1_100", "pay_123", good))

	assert.False(t, VerifySignature("gw_AMB-1_100", "pay_123", "tampered"))
	assert.False(t, VerifySignature("gw_AMB-2_100", "pay_123", good))
	assert.False(t, VerifySignature("gw_AMB-1_100", "pay_456", good))
	assert.False(t, VerifySignature("gw_AMB-1_100", "pay_123", ""))
}

func TestVerifyWebhook(t *testing.T) {
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "hook-secret")

	body := []byte(`{"event":"payment.captured","payload":{"orderNumber":"AMB-1"}}`)
	mac := hmac.New(sha256.New, []byte("hook-secret"))
	mac.Write(body)
	sig := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, VerifyWebhook(body, sig))
	assert.False(t, VerifyWebhook([]byte(`{}`), sig))
	assert.False(t, VerifyWebhook(body, "bogus"))
}
