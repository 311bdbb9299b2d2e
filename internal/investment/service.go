package investment

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
	Investments []*Investment `json:"investments"`
}

type followListPayload struct {
	CopyTradeInvestments []*CopyFollow `json:"copyTradeInvestments"`
}

// ListMine returns the caller's plan investments.
func (s *Service) ListMine(ctx context.Context) ([]*Investment, error) {
	var out listPayload
	if err := s.api.Get(ctx, "/api/v1/users/me/investments", &out); err != nil {
		return nil, err
	}

	return out.Investments, nil
}

// ListAll returns every plan investment. Admin only.
func (s *Service) ListAll(ctx context.Context) ([]*Investment, error) {
	var out listPayload
	if err := s.api.Get(ctx, "/api/v1/investments", &out); err != nil {
		return nil, err
	}

	return out.Investments, nil
}

// Refresh asks the server to settle any accrual due on the caller's
// investments. The dashboard calls this before reloading balances.
func (s *Service) Refresh(ctx context.Context) error {
	return s.api.Patch(ctx, "/api/v1/investments/mine", nil, nil)
}

// CreateParams commits an amount to a plan.
type CreateParams struct {
	PlanID uuid.UUID       `json:"planId"`
	Amount decimal.Decimal `json:"amount"`
}

// Create opens a plan investment and returns the created record.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Investment, error) {
	var out struct {
		Investment *Investment `json:"investment"`
	}

	if err := s.api.Post(ctx, "/api/v1/users/me/investments", params, &out); err != nil {
		return nil, err
	}

	return out.Investment, nil
}

// ListMineFollows returns the caller's copy-trade follows.
func (s *Service) ListMineFollows(ctx context.Context) ([]*CopyFollow, error) {
	var out followListPayload
	if err := s.api.Get(ctx, "/api/v1/users/me/copy-trade-investments", &out); err != nil {
		return nil, err
	}

	return out.CopyTradeInvestments, nil
}

// ListAllFollows returns every copy-trade follow. Admin only.
func (s *Service) ListAllFollows(ctx context.Context) ([]*CopyFollow, error) {
	var out followListPayload
	if err := s.api.Get(ctx, "/api/v1/copytradeInvestments", &out); err != nil {
		return nil, err
	}

	return out.CopyTradeInvestments, nil
}

// FollowParams commits an amount to mirroring a trader.
type FollowParams struct {
	TradeID uuid.UUID       `json:"tradeId"`
	Amount  decimal.Decimal `json:"amount"`
}

// Follow opens a copy-trade position and returns the created record.
func (s *Service) Follow(ctx context.Context, params FollowParams) (*CopyFollow, error) {
	var out struct {
		CopyTradeInvestment *CopyFollow `json:"copyTradeInvestment"`
	}

	if err := s.api.Post(ctx, "/api/v1/users/me/copy-trade-investments", params, &out); err != nil {
		return nil, err
	}

	return out.CopyTradeInvestment, nil
}

// StopFollow halts an active copy-trade position and returns the
// updated record. Admin only.
func (s *Service) StopFollow(ctx context.Context, id uuid.UUID) (*CopyFollow, error) {
	var out struct {
		CopyTradeInvestment *CopyFollow `json:"copyTradeInvestment"`
	}

	path := fmt.Sprintf("/api/v1/copytradeInvestments/%s/stop", id)
	if err := s.api.Patch(ctx, path, nil, &out); err != nil {
		return nil, err
	}

	return out.CopyTradeInvestment, nil
}
