package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodePaymentToken(t *testing.T) {
	// Test case 1: Standard date/time values
	paymentDate := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodePaymentToken(paymentDate, "pay-1")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodePaymentToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, paymentDate, decodedDate, "Payment date should match after decode")
	assert.Equal(t, "pay-1", decodedID, "Payment ID should match after decode")

	// Test case 2: non-UTC input is normalised
	local := time.Date(2023, 5, 15, 20, 0, 0, 0, time.FixedZone("UTC+5", 5*3600))
	decodedDate, _, err = DecodePaymentToken(EncodePaymentToken(local, "pay-2"))
	assert.NoError(t, err)
	assert.True(t, local.Equal(decodedDate), "Instant should survive the round trip")
}

func TestDecodePaymentTokenError(t *testing.T) {
	// Test invalid base64
	_, _, err := DecodePaymentToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test invalid format (missing separator)
	_, _, err = DecodePaymentToken(base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z")))
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Test invalid date format
	_, _, err = DecodePaymentToken(EncodeMultiFieldToken("notadate", "pay-1"))
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "payment date parse", "Error should mention date parsing issue")

	// Test missing id
	_, _, err = DecodePaymentToken(EncodeMultiFieldToken("2023-05-15T00:00:00Z", ""))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing payment id")
}

func TestMultiFieldToken(t *testing.T) {
	token := EncodeMultiFieldToken("a", "b", "c")
	parts, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, parts)
}
