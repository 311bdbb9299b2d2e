package investment_test

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
	"github.com/markoswell/optivest/internal/investment"
	"github.com/markoswell/optivest/internal/plan"
	"github.com/markoswell/optivest/internal/user"
	"github.com/markoswell/optivest/internal/wizard"
)

func starterPlan() *plan.Plan {
	return &plan.Plan{
		Name:       "Starter",
		MinDeposit: decimal.NewFromInt(100),
		MaxDeposit: decimal.NewFromInt(1000),
	}
}

func TestInvestFlow_Complete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	selected := starterPlan()

	doer := api.NewMockDoer(ctrl)
	doer.EXPECT().
		Post(gomock.Any(), "/api/v1/users/me/investments", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, body any, out any) error {
			params, ok := body.(investment.CreateParams)
			require.True(t, ok)
			assert.Equal(t, selected.ID, params.PlanID)
			assert.True(t, params.Amount.Equal(decimal.NewFromInt(500)))

			return json.Unmarshal([]byte(`{"investment":{"amount":"500","status":"active"}}`), out)
		})

	wallet := user.Wallet{Balance: decimal.NewFromInt(2000)}

	var created *investment.Investment
	m := wizard.NewMachine(investment.InvestFlow(investment.NewService(doer), wallet, func(inv *investment.Investment) {
		created = inv
	}))

	require.NoError(t, m.Select(selected))

	err := m.Submit(context.Background(), wizard.Values{investment.ValueAmount: "500"})

	require.NoError(t, err)
	assert.Equal(t, wizard.ResultSuccess, m.Result())
	require.NotNil(t, created)
	assert.Equal(t, investment.StatusActive, created.Status)
}

func TestInvestFlow_PlanBounds(t *testing.T) {
	wallet := user.Wallet{Balance: decimal.NewFromInt(5000)}

	tests := []struct {
		name    string
		amount  string
		wantMsg string
	}{
		{name: "Below plan minimum", amount: "50", wantMsg: "minimum investment for this plan is 100"},
		{name: "Above plan maximum", amount: "1500", wantMsg: "maximum investment for this plan is 1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := wizard.NewMachine(investment.InvestFlow(investment.NewService(api.NewMockDoer(ctrl)), wallet, nil))
			require.NoError(t, m.Select(starterPlan()))

			err := m.Submit(context.Background(), wizard.Values{investment.ValueAmount: tt.amount})

			assert.EqualError(t, err, tt.wantMsg)
			assert.Equal(t, 2, m.Step())
		})
	}
}

func TestInvestFlow_InsufficientBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wallet := user.Wallet{Balance: decimal.NewFromInt(300)}
	m := wizard.NewMachine(investment.InvestFlow(investment.NewService(api.NewMockDoer(ctrl)), wallet, nil))

	require.NoError(t, m.Select(starterPlan()))

	err := m.Submit(context.Background(), wizard.Values{investment.ValueAmount: "500"})

	assert.ErrorIs(t, err, investment.ErrInsufficientBalance)
}

func TestCopyTradeFlow_Complete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trader := &copytrade.Trader{
		TradeName:  "FX Sentinel",
		MinDeposit: decimal.NewFromInt(200),
	}

	doer := api.NewMockDoer(ctrl)
	doer.EXPECT().
		Post(gomock.Any(), "/api/v1/users/me/copy-trade-investments", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, body any, out any) error {
			params, ok := body.(investment.FollowParams)
			require.True(t, ok)
			assert.Equal(t, trader.ID, params.TradeID)

			return json.Unmarshal([]byte(`{"copyTradeInvestment":{"amount":"250","status":"active"}}`), out)
		})

	wallet := user.Wallet{CopytradeBalance: decimal.NewFromInt(400)}

	var created *investment.CopyFollow
	m := wizard.NewMachine(investment.CopyTradeFlow(investment.NewService(doer), wallet, func(f *investment.CopyFollow) {
		created = f
	}))

	require.NoError(t, m.Select(trader))

	err := m.Submit(context.Background(), wizard.Values{investment.ValueAmount: "250"})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, investment.StatusActive, created.Status)
}

func TestCopyTradeFlow_BelowTraderMinimum(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trader := &copytrade.Trader{MinDeposit: decimal.NewFromInt(200)}
	wallet := user.Wallet{CopytradeBalance: decimal.NewFromInt(1000)}

	m := wizard.NewMachine(investment.CopyTradeFlow(investment.NewService(api.NewMockDoer(ctrl)), wallet, nil))
	require.NoError(t, m.Select(trader))

	err := m.Submit(context.Background(), wizard.Values{investment.ValueAmount: "150"})

	assert.EqualError(t, err, "minimum investment is 200")
}

func TestCopyTradeFlow_NoTraderSelected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wallet := user.Wallet{CopytradeBalance: decimal.NewFromInt(1000)}
	flow := investment.CopyTradeFlow(investment.NewService(api.NewMockDoer(ctrl)), wallet, nil)

	err := flow.Validate(map[string]any{}, wizard.Values{investment.ValueAmount: "300"})

	assert.ErrorIs(t, err, investment.ErrNoTrader)
}
