package copytrade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markoswell/optivest/internal/api"
)

// Trader is an expert strategy investors can follow. Fees is the
// percentage charged on top of the committed amount.
type Trader struct {
	ID          uuid.UUID       `json:"id"`
	TradeName   string          `json:"tradeName"`
	Description string          `json:"description"`
	Fees        decimal.Decimal `json:"fees"`
	MinDeposit  decimal.Decimal `json:"minDeposit"`
	WinRate     decimal.Decimal `json:"winRate"`
	Image       string          `json:"image,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (t *Trader) RecordID() uuid.UUID { return t.ID }

// Fee returns the fee charged for committing amount to this trader.
func (t *Trader) Fee(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(t.Fees).Div(decimal.NewFromInt(100))
}

type Service struct {
	api api.Doer
}

func NewService(doer api.Doer) *Service {
	return &Service{api: doer}
}

type listPayload struct {
	Copytrades []*Trader `json:"copytrades"`
}

type singlePayload struct {
	Copytrade *Trader `json:"copytrade"`
}

func (s *Service) List(ctx context.Context) ([]*Trader, error) {
	var out listPayload
	if err := s.api.Get(ctx, "/api/v1/copytrades", &out); err != nil {
		return nil, err
	}

	return out.Copytrades, nil
}

// CreateParams carries the fields for a new or edited trader profile.
type CreateParams struct {
	TradeName   string          `json:"tradeName"`
	Description string          `json:"description"`
	Fees        decimal.Decimal `json:"fees"`
	MinDeposit  decimal.Decimal `json:"minDeposit"`
	WinRate     decimal.Decimal `json:"winRate"`
}

// Create publishes a trader profile. Admin only.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Trader, error) {
	var out singlePayload
	if err := s.api.Post(ctx, "/api/v1/copytrades", params, &out); err != nil {
		return nil, err
	}

	return out.Copytrade, nil
}

// Update edits a trader profile and returns the replacement record.
// Admin only.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params CreateParams) (*Trader, error) {
	var out singlePayload

	path := fmt.Sprintf("/api/v1/copytrades/%s", id)
	if err := s.api.Patch(ctx, path, params, &out); err != nil {
		return nil, err
	}

	return out.Copytrade, nil
}

// Delete removes a trader profile. Admin only.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/v1/copytrades/%s", id))
}
