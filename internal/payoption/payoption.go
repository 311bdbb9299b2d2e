package payoption

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/markoswell/optivest/internal/api"
)

// Channel names used by the platform for deposit methods.
const (
	ChannelBank         = "bank"
	ChannelMobileWallet = "mobile wallet"
	ChannelCryptoWallet = "crypto wallet"
)

// PaymentOption is one way investors can move money in. For crypto
// channels Bank carries the network name and AccountNumber the wallet
// address.
type PaymentOption struct {
	ID            uuid.UUID `json:"id"`
	PayOption     string    `json:"payOption"`
	Bank          string    `json:"bank"`
	AccountName   string    `json:"accountName"`
	AccountNumber string    `json:"accountNumber"`
	Extra         string    `json:"extra,omitempty"`
	Image         string    `json:"image,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (p *PaymentOption) RecordID() uuid.UUID { return p.ID }

// DisplayName is the channel label shown to investors.
func (p *PaymentOption) DisplayName() string {
	switch p.PayOption {
	case ChannelBank:
		return "Bank Transfer"
	case ChannelMobileWallet:
		return "Mobile Wallet"
	case ChannelCryptoWallet:
		return "Crypto Wallet"
	}

	return p.PayOption
}

type Service struct {
	api api.Doer
}

func NewService(doer api.Doer) *Service {
	return &Service{api: doer}
}

type listPayload struct {
	PaymentOptions []*PaymentOption `json:"paymentOptions"`
}

type singlePayload struct {
	PaymentOption *PaymentOption `json:"paymentOption"`
}

func (s *Service) List(ctx context.Context) ([]*PaymentOption, error) {
	var out listPayload
	if err := s.api.Get(ctx, "/api/v1/paymentOptions", &out); err != nil {
		return nil, err
	}

	return out.PaymentOptions, nil
}

// CreateParams carries the fields for a new or edited payment option.
type CreateParams struct {
	PayOption     string `json:"payOption"`
	Bank          string `json:"bank"`
	AccountName   string `json:"accountName,omitempty"`
	AccountNumber string `json:"accountNumber"`
	Extra         string `json:"extra,omitempty"`
}

// Create registers a deposit method. Admin only.
func (s *Service) Create(ctx context.Context, params CreateParams) (*PaymentOption, error) {
	var out singlePayload
	if err := s.api.Post(ctx, "/api/v1/paymentOptions", params, &out); err != nil {
		return nil, err
	}

	return out.PaymentOption, nil
}

// Update edits a deposit method and returns the replacement record.
// Admin only.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params CreateParams) (*PaymentOption, error) {
	var out singlePayload

	path := fmt.Sprintf("/api/v1/paymentOptions/%s", id)
	if err := s.api.Patch(ctx, path, params, &out); err != nil {
		return nil, err
	}

	return out.PaymentOption, nil
}

// Delete removes a deposit method. Admin only.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/v1/paymentOptions/%s", id))
}
