package investment_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/markoswell/optivest/internal/copytrade"
	"github.com/markoswell/optivest/internal/investment"
)

func TestInvestment_Progress(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		now    time.Time
		want   float64
	}{
		{
			name:   "Halfway",
			expiry: start.AddDate(0, 0, 10),
			now:    start.AddDate(0, 0, 5),
			want:   50,
		},
		{
			name:   "Before start clamps to zero",
			expiry: start.AddDate(0, 0, 10),
			now:    start.AddDate(0, 0, -1),
			want:   0,
		},
		{
			name:   "Past expiry clamps to hundred",
			expiry: start.AddDate(0, 0, 10),
			now:    start.AddDate(0, 1, 0),
			want:   100,
		},
		{
			name: "Missing expiry",
			now:  start.AddDate(0, 0, 5),
			want: 0,
		},
		{
			name:   "Expiry before start",
			expiry: start.AddDate(0, 0, -3),
			now:    start,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &investment.Investment{CreatedAt: start, ExpiryDate: tt.expiry}

			assert.InDelta(t, tt.want, inv.Progress(tt.now), 0.001)
		})
	}
}

func TestCopyFollow_SearchFields(t *testing.T) {
	follow := &investment.CopyFollow{
		Amount: decimal.NewFromInt(250),
		Trade:  &copytrade.Trader{TradeName: "FX Sentinel"},
		User:   &investment.OwnerRef{Name: "Ada Okafor"},
	}

	assert.Equal(t, []string{"FX Sentinel", "Ada Okafor", "250"}, follow.SearchFields())
}
