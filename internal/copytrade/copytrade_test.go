package copytrade_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/markoswell/optivest/internal/api"
	"github.com/markoswell/optivest/internal/copytrade"
)

func TestTrader_Fee(t *testing.T) {
	trader := &copytrade.Trader{Fees: decimal.NewFromInt(5)}

	fee := trader.Fee(decimal.NewFromInt(1000))

	assert.True(t, fee.Equal(decimal.NewFromInt(50)), "got %s", fee)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	doer := api.NewMockDoer(ctrl)
	doer.EXPECT().
		Get(gomock.Any(), "/api/v1/copytrades", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, out any) error {
			return json.Unmarshal([]byte(`{"copytrades":[{"tradeName":"FX Sentinel","fees":"5"}]}`), out)
		})

	svc := copytrade.NewService(doer)
	got, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "FX Sentinel", got[0].TradeName)
}
