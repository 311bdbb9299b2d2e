package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markoswell/optivest/internal/api"
)

type Service struct {
	api api.Doer
}

func NewService(doer api.Doer) *Service {
	return &Service{api: doer}
}

type listPayload struct {
	Transactions []*Transaction `json:"transactions"`
}

type singlePayload struct {
	Transaction *Transaction `json:"transaction"`
}

// ListMine returns the caller's transactions, newest first.
func (s *Service) ListMine(ctx context.Context) ([]*Transaction, error) {
	var out listPayload
	if err := s.api.Get(ctx, "/api/v1/users/me/transactions", &out); err != nil {
		return nil, err
	}

	return out.Transactions, nil
}

// Recent returns the caller's latest activity for the dashboard.
func (s *Service) Recent(ctx context.Context) ([]*Transaction, error) {
	var out listPayload
	if err := s.api.Get(ctx, "/api/v1/transactions/recent", &out); err != nil {
		return nil, err
	}

	return out.Transactions, nil
}

// ListAll returns every transaction on the platform. Admin only.
func (s *Service) ListAll(ctx context.Context) ([]*Transaction, error) {
	var out listPayload
	if err := s.api.Get(ctx, "/api/v1/transactions", &out); err != nil {
		return nil, err
	}

	return out.Transactions, nil
}

// Approve marks a pending transaction as successful and returns the
// updated record. Admin only.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.action(ctx, id, "approve")
}

// Decline rejects a pending transaction and returns the updated
// record. Admin only.
func (s *Service) Decline(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.action(ctx, id, "decline")
}

func (s *Service) action(ctx context.Context, id uuid.UUID, verb string) (*Transaction, error) {
	var out singlePayload

	path := fmt.Sprintf("/api/v1/transactions/%s/action/%s", id, verb)
	if err := s.api.Patch(ctx, path, nil, &out); err != nil {
		return nil, err
	}

	return out.Transaction, nil
}

// DepositParams is a deposit submission. The receipt attachment is
// required; the server will not accept a deposit without proof.
type DepositParams struct {
	Type           Type
	Amount         decimal.Decimal
	PaymentChannel string
	Receipt        *api.Attachment
}

// CreateDeposit submits a deposit as a multipart form and returns the
// created pending transaction.
func (s *Service) CreateDeposit(ctx context.Context, params DepositParams) (*Transaction, error) {
	fields := map[string]string{
		"type":           string(params.Type),
		"amount":         params.Amount.String(),
		"paymentChannel": params.PaymentChannel,
	}

	var out singlePayload
	if err := s.api.PostForm(ctx, "/api/v1/users/me/transactions", fields, params.Receipt, &out); err != nil {
		return nil, err
	}

	return out.Transaction, nil
}

// WithdrawalParams is a withdrawal request against one wallet balance,
// paid out to a saved bank account.
type WithdrawalParams struct {
	Amount decimal.Decimal
	Source string
	BankID uuid.UUID
}

// CreateWithdrawal places a withdrawal request and returns the created
// pending transaction.
func (s *Service) CreateWithdrawal(ctx context.Context, params WithdrawalParams) (*Transaction, error) {
	fields := map[string]string{
		"type":      string(TypeWithdrawal),
		"amount":    params.Amount.String(),
		"payOption": params.Source,
		"bank_id":   params.BankID.String(),
	}

	var out singlePayload
	if err := s.api.PostForm(ctx, "/api/v1/users/me/transactions", fields, nil, &out); err != nil {
		return nil, err
	}

	return out.Transaction, nil
}
