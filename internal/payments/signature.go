package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// ComputeSignature returns the hex-encoded HMAC-SHA256 of "orderID|paymentID"
// under the gateway shared secret. This is the construction Razorpay uses to
// sign payment confirmations.
func ComputeSignature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether the claimed signature matches the expected
// one. Comparison is constant-time; any mismatch, including a length
// mismatch, is a rejection. It never panics into acceptance.
func VerifySignature(orderID, paymentID, claimed, secret string) bool {
	expected := ComputeSignature(orderID, paymentID, secret)
	if len(expected) != len(claimed) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(claimed)) == 1
}
