package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFare(t *testing.T) {
	tests := []struct {
		name          string
		totalFare     float64
		method        string
		wantPaid      float64
		wantRemaining float64
		wantStatus    string
	}{
		{
			name:          "20 percent advance",
			totalFare:     1500,
			method:        MethodPartialPaid,
			wantPaid:      300,
			wantRemaining: 1200,
			wantStatus:    StatusPartial,
		},
		{
			name:          "20 percent advance rounds to nearest rupee",
			totalFare:     1234,
			method:        MethodPartialPaid,
			wantPaid:      247, // round(246.8)
			wantRemaining: 987,
			wantStatus:    StatusPartial,
		},
		{
			name:          "full advance",
			totalFare:     800,
			method:        MethodFullPaid,
			wantPaid:      800,
			wantRemaining: 0,
			wantStatus:    StatusFull,
		},
		{
			name:          "cash on delivery",
			totalFare:     950,
			method:        MethodCash,
			wantPaid:      0,
			wantRemaining: 950,
			wantStatus:    StatusPending,
		},
		{
			name:          "unrecognized method falls back to cash",
			totalFare:     950,
			method:        "50",
			wantPaid:      0,
			wantRemaining: 950,
			wantStatus:    StatusPending,
		},
		{
			name:          "zero fare",
			totalFare:     0,
			method:        MethodPartialPaid,
			wantPaid:      0,
			wantRemaining: 0,
			wantStatus:    StatusPartial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := SplitFare(tt.totalFare, tt.method)
			assert.Equal(t, tt.totalFare, b.TotalFare)
			assert.Equal(t, tt.wantPaid, b.AmountPaid)
			assert.Equal(t, tt.wantRemaining, b.RemainingAmount)
			assert.Equal(t, tt.wantStatus, b.PaymentStatus)
			assert.Equal(t, b.TotalFare, b.AmountPaid+b.RemainingAmount)
		})
	}
}
