package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markoswell/optivest/internal/api"
)

// Timing is the unit a plan's duration is measured in.
type Timing string

const (
	TimingHours Timing = "hours"
	TimingDays  Timing = "days"
)

// Term buckets plans by how long funds are locked up.
type Term string

const (
	TermAll    Term = "all"
	TermShort  Term = "short"
	TermMedium Term = "medium"
	TermLong   Term = "long"
)

// Plan is an investment product: a return percentage over a fixed
// duration, bounded by a deposit range.
type Plan struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Percentage      decimal.Decimal `json:"percentage"`
	Duration        int             `json:"planDuration"`
	TimingParameter Timing          `json:"timingParameter"`
	MinDeposit      decimal.Decimal `json:"minDeposit"`
	MaxDeposit      decimal.Decimal `json:"maxDeposit"`
	ReferralBonus   decimal.Decimal `json:"referalBonus"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func (p *Plan) RecordID() uuid.UUID { return p.ID }

// Term classifies the plan: hourly plans are short, day plans up to
// five days medium, anything longer long.
func (p *Plan) Term() Term {
	switch {
	case p.TimingParameter == TimingHours:
		return TermShort
	case p.Duration <= 5:
		return TermMedium
	default:
		return TermLong
	}
}

// ByTerm filters plans to one term bucket. TermAll returns the input
// unchanged.
func ByTerm(plans []*Plan, term Term) []*Plan {
	if term == TermAll || term == "" {
		return plans
	}

	out := make([]*Plan, 0, len(plans))
	for _, p := range plans {
		if p.Term() == term {
			out = append(out, p)
		}
	}

	return out
}

type Service struct {
	api api.Doer
}

func NewService(doer api.Doer) *Service {
	return &Service{api: doer}
}

type listPayload struct {
	Plans []*Plan `json:"plans"`
}

type singlePayload struct {
	Plan *Plan `json:"plan"`
}

func (s *Service) List(ctx context.Context) ([]*Plan, error) {
	var out listPayload
	if err := s.api.Get(ctx, "/api/v1/plans", &out); err != nil {
		return nil, err
	}

	return out.Plans, nil
}

// CreateParams carries the fields for a new or edited plan.
type CreateParams struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Percentage      decimal.Decimal `json:"percentage"`
	Duration        int             `json:"planDuration"`
	TimingParameter Timing          `json:"timingParameter"`
	MinDeposit      decimal.Decimal `json:"minDeposit"`
	MaxDeposit      decimal.Decimal `json:"maxDeposit"`
	ReferralBonus   decimal.Decimal `json:"referalBonus"`
}

// Create adds an investment product. Admin only.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Plan, error) {
	var out singlePayload
	if err := s.api.Post(ctx, "/api/v1/plans", params, &out); err != nil {
		return nil, err
	}

	return out.Plan, nil
}

// Update edits an investment product and returns the replacement
// record. Admin only.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params CreateParams) (*Plan, error) {
	var out singlePayload

	path := fmt.Sprintf("/api/v1/plans/%s", id)
	if err := s.api.Patch(ctx, path, params, &out); err != nil {
		return nil, err
	}

	return out.Plan, nil
}

// Delete retires an investment product. Admin only.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/v1/plans/%s", id))
}
