package usecase

import (
	"testing"
	"time"
)

func TestCalculateRefund(t *testing.T) {
	departureAt := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		now         time.Time
		totalAmount float64
		want        float64
	}{
		{
			name:        "more than 24 hours before departure refunds 90 percent",
			now:         departureAt.Add(-48 * time.Hour),
			totalAmount: 1000,
			want:        900,
		},
		{
			name:        "exactly 24 hours falls into 50 percent tier",
			now:         departureAt.Add(-24 * time.Hour),
			totalAmount: 1000,
			want:        500,
		},
		{
			name:        "10 hours before departure refunds 50 percent",
			now:         departureAt.Add(-10 * time.Hour),
			totalAmount: 1000,
			want:        500,
		},
		{
			name:        "exactly 2 hours refunds nothing",
			now:         departureAt.Add(-2 * time.Hour),
			totalAmount: 1000,
			want:        0,
		},
		{
			name:        "1 hour before departure refunds nothing",
			now:         departureAt.Add(-1 * time.Hour),
			totalAmount: 1000,
			want:        0,
		},
		{
			name:        "after departure refunds nothing",
			now:         departureAt.Add(3 * time.Hour),
			totalAmount: 1000,
			want:        0,
		},
		{
			name:        "zero amount stays zero",
			now:         departureAt.Add(-48 * time.Hour),
			totalAmount: 0,
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateRefund(departureAt, tt.now, tt.totalAmount)
			if got != tt.want {
				t.Errorf("CalculateRefund() = %v, want %v", got, tt.want)
			}
		})
	}
}
