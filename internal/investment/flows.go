package investment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/markoswell/optivest/internal/copytrade"
	"github.com/markoswell/optivest/internal/plan"
	"github.com/markoswell/optivest/internal/user"
	"github.com/markoswell/optivest/internal/wizard"
)

// Selection and form value keys shared by the flows and their views.
const (
	KeyPlan   = "plan"
	KeyTrader = "trader"

	ValueAmount = "amount"
)

var (
	ErrAmountRequired      = errors.New("please enter a valid amount")
	ErrNoPlan              = errors.New("please select a plan first")
	ErrNoTrader            = errors.New("please select a trader first")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)

// InvestFlow is the plan investment wizard: plan, amount, done. The
// wallet snapshot caps the amount; the chosen plan bounds it. sink
// receives the created investment after a confirmed submission.
func InvestFlow(svc *Service, wallet user.Wallet, sink func(*Investment)) wizard.Flow {
	return wizard.Flow{
		Steps: []wizard.Step{
			{Key: KeyPlan, Title: "Choose a Plan", Kind: wizard.StepChoice},
			{Key: "details", Title: "Enter Amount", Kind: wizard.StepForm},
			{Key: "done", Title: "Investment Placed", Kind: wizard.StepDone},
		},
		Validate: func(selections map[string]any, values wizard.Values) error {
			amount, err := parseAmount(values[ValueAmount])
			if err != nil {
				return err
			}

			selected, ok := selections[KeyPlan].(*plan.Plan)
			if !ok {
				return ErrNoPlan
			}

			if amount.GreaterThan(wallet.Balance) {
				return ErrInsufficientBalance
			}

			if amount.LessThan(selected.MinDeposit) {
				return fmt.Errorf("minimum investment for this plan is %s", selected.MinDeposit)
			}

			if amount.GreaterThan(selected.MaxDeposit) {
				return fmt.Errorf("maximum investment for this plan is %s", selected.MaxDeposit)
			}

			return nil
		},
		Submit: func(ctx context.Context, selections map[string]any, values wizard.Values) error {
			amount, err := parseAmount(values[ValueAmount])
			if err != nil {
				return err
			}

			selected, _ := selections[KeyPlan].(*plan.Plan)

			created, err := svc.Create(ctx, CreateParams{PlanID: selected.ID, Amount: amount})
			if err != nil {
				return err
			}

			if sink != nil {
				sink(created)
			}

			return nil
		},
	}
}

// CopyTradeFlow is the follow-a-trader wizard: trader, amount, done.
// The amount must cover the trader's minimum and fit inside the
// copytrade balance.
func CopyTradeFlow(svc *Service, wallet user.Wallet, sink func(*CopyFollow)) wizard.Flow {
	return wizard.Flow{
		Steps: []wizard.Step{
			{Key: KeyTrader, Title: "Choose a Trader", Kind: wizard.StepChoice},
			{Key: "details", Title: "Enter Amount", Kind: wizard.StepForm},
			{Key: "done", Title: "Copy Trade Placed", Kind: wizard.StepDone},
		},
		Validate: func(selections map[string]any, values wizard.Values) error {
			amount, err := parseAmount(values[ValueAmount])
			if err != nil {
				return err
			}

			trader, ok := selections[KeyTrader].(*copytrade.Trader)
			if !ok {
				return ErrNoTrader
			}

			if amount.LessThan(trader.MinDeposit) {
				return fmt.Errorf("minimum investment is %s", trader.MinDeposit)
			}

			if amount.GreaterThan(wallet.CopytradeBalance) {
				return ErrInsufficientBalance
			}

			return nil
		},
		Submit: func(ctx context.Context, selections map[string]any, values wizard.Values) error {
			amount, err := parseAmount(values[ValueAmount])
			if err != nil {
				return err
			}

			trader, _ := selections[KeyTrader].(*copytrade.Trader)

			created, err := svc.Follow(ctx, FollowParams{TradeID: trader.ID, Amount: amount})
			if err != nil {
				return err
			}

			if sink != nil {
				sink(created)
			}

			return nil
		},
	}
}

func parseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return decimal.Zero, ErrAmountRequired
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrAmountRequired
	}

	return amount, nil
}
