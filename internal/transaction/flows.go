package transaction

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/markoswell/optivest/internal/api"
	"github.com/markoswell/optivest/internal/payoption"
	"github.com/markoswell/optivest/internal/user"
	"github.com/markoswell/optivest/internal/wizard"
)

// Selection and form value keys shared by the flows and their views.
const (
	KeyType        = "type"
	KeyMethod      = "method"
	KeySource      = "source"
	KeyDestination = "destination"

	ValueAmount  = "amount"
	ValueReceipt = "receipt"
)

var (
	ErrAmountRequired  = errors.New("please enter a valid amount")
	ErrReceiptRequired = errors.New("please upload payment proof")
	ErrNoDestination   = errors.New("please select a withdrawal account")
	ErrExceedsBalance  = errors.New("amount exceeds available balance")
)

// DepositFlow is the four-step deposit wizard: deposit type, payment
// method, amount + proof, done. sink receives the created transaction
// after a confirmed submission.
func DepositFlow(svc *Service, sink func(*Transaction)) wizard.Flow {
	return wizard.Flow{
		Steps: []wizard.Step{
			{Key: KeyType, Title: "Select Deposit Type", Kind: wizard.StepChoice},
			{Key: KeyMethod, Title: "Choose Payment Method", Kind: wizard.StepChoice},
			{Key: "details", Title: "Complete Deposit", Kind: wizard.StepForm},
			{Key: "done", Title: "Deposit Submitted", Kind: wizard.StepDone},
		},
		Validate: func(_ map[string]any, values wizard.Values) error {
			if _, err := parseAmount(values[ValueAmount]); err != nil {
				return err
			}

			if strings.TrimSpace(values[ValueReceipt]) == "" {
				return ErrReceiptRequired
			}

			return nil
		},
		Submit: func(ctx context.Context, selections map[string]any, values wizard.Values) error {
			amount, err := parseAmount(values[ValueAmount])
			if err != nil {
				return err
			}

			depositType, _ := selections[KeyType].(Type)
			method, _ := selections[KeyMethod].(*payoption.PaymentOption)
			if method == nil {
				return errors.New("please choose a payment method")
			}

			receiptPath := values[ValueReceipt]
			content, err := os.ReadFile(receiptPath)
			if err != nil {
				return fmt.Errorf("reading payment proof: %w", err)
			}

			created, err := svc.CreateDeposit(ctx, DepositParams{
				Type:           depositType,
				Amount:         amount,
				PaymentChannel: strings.ToLower(method.PayOption),
				Receipt: &api.Attachment{
					Field:    "receipt",
					FileName: filepath.Base(receiptPath),
					Content:  content,
				},
			})
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

// WithdrawalFlow is the four-step withdrawal wizard: source balance,
// destination account, amount, done. The wallet snapshot caps the
// amount per source.
func WithdrawalFlow(svc *Service, wallet user.Wallet, sink func(*Transaction)) wizard.Flow {
	return wizard.Flow{
		Steps: []wizard.Step{
			{Key: KeySource, Title: "Select Withdrawal Source", Kind: wizard.StepChoice},
			{Key: KeyDestination, Title: "Choose Destination", Kind: wizard.StepChoice},
			{Key: "details", Title: "Enter Amount", Kind: wizard.StepForm},
			{Key: "done", Title: "Withdrawal Requested", Kind: wizard.StepDone},
		},
		Validate: func(selections map[string]any, values wizard.Values) error {
			amount, err := parseAmount(values[ValueAmount])
			if err != nil {
				return err
			}

			if _, ok := selections[KeyDestination].(*user.BankAccount); !ok {
				return ErrNoDestination
			}

			source, _ := selections[KeySource].(string)
			if amount.GreaterThan(walletBalance(wallet, source)) {
				return ErrExceedsBalance
			}

			return nil
		},
		Submit: func(ctx context.Context, selections map[string]any, values wizard.Values) error {
			amount, err := parseAmount(values[ValueAmount])
			if err != nil {
				return err
			}

			source, _ := selections[KeySource].(string)
			dest, _ := selections[KeyDestination].(*user.BankAccount)

			created, err := svc.CreateWithdrawal(ctx, WithdrawalParams{
				Amount: amount,
				Source: source,
				BankID: dest.ID,
			})
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

// Withdrawal source keys, matching the wallet fields served by the API.
const (
	SourceBalance   = "balance"
	SourceCopytrade = "copytradeBalance"
	SourceReferral  = "referralBalance"
)

// SourceLabel names a withdrawal source for display.
func SourceLabel(source string) string {
	switch source {
	case SourceBalance:
		return "Investment Balance"
	case SourceCopytrade:
		return "Copytrade Balance"
	case SourceReferral:
		return "Referral Earnings"
	}

	return source
}

func walletBalance(w user.Wallet, source string) decimal.Decimal {
	switch source {
	case SourceCopytrade:
		return w.CopytradeBalance
	case SourceReferral:
		return w.ReferralBalance
	default:
		return w.Balance
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
