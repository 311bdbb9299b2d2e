package user

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

// Me returns the authenticated account, wallet included.
func (s *Service) Me(ctx context.Context) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}

	if err := s.api.Get(ctx, "/api/v1/users/me", &out); err != nil {
		return nil, err
	}

	return out.User, nil
}

// List returns every platform account. Admin only.
func (s *Service) List(ctx context.Context) ([]*User, error) {
	var out struct {
		Users []*User `json:"users"`
	}

	if err := s.api.Get(ctx, "/api/v1/users", &out); err != nil {
		return nil, err
	}

	return out.Users, nil
}

// UpdateStatus transitions an account's lifecycle state and returns
// the updated record. Admin only.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}

	body := map[string]Status{"status": status}
	path := fmt.Sprintf("/api/v1/users/%s/status", id)

	if err := s.api.Patch(ctx, path, body, &out); err != nil {
		return nil, err
	}

	return out.User, nil
}

// Delete removes an account. Admin only.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/v1/users/%s", id))
}

// FundParams credits or adjusts one of an account's wallet balances.
type FundParams struct {
	Wallet          string          `json:"wallet"`
	Amount          decimal.Decimal `json:"amount"`
	ReturnPrincipal bool            `json:"returnPrincipal"`
}

// FundWallet applies a manual wallet adjustment and returns the
// updated account. Admin only.
func (s *Service) FundWallet(ctx context.Context, id uuid.UUID, params FundParams) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}

	path := fmt.Sprintf("/api/v1/users/%s/wallets", id)
	if err := s.api.Patch(ctx, path, params, &out); err != nil {
		return nil, err
	}

	return out.User, nil
}

// Banks returns the caller's saved withdrawal destinations.
func (s *Service) Banks(ctx context.Context) ([]*BankAccount, error) {
	var out struct {
		Accounts []*BankAccount `json:"accounts"`
	}

	if err := s.api.Get(ctx, "/api/v1/users/me/banks", &out); err != nil {
		return nil, err
	}

	return out.Accounts, nil
}

// AddBankParams describes a new withdrawal destination.
type AddBankParams struct {
	BankName      string `json:"bankName,omitempty"`
	AccountName   string `json:"accountName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	WalletAddress string `json:"walletAddress,omitempty"`
	Network       string `json:"network,omitempty"`
}

func (s *Service) AddBank(ctx context.Context, params AddBankParams) (*BankAccount, error) {
	var out struct {
		Account *BankAccount `json:"account"`
	}

	if err := s.api.Post(ctx, "/api/v1/users/me/banks", params, &out); err != nil {
		return nil, err
	}

	return out.Account, nil
}

func (s *Service) DeleteBank(ctx context.Context, id uuid.UUID) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/v1/users/me/banks/%s", id))
}

// UpdateProfileParams carries the editable profile fields. Nil fields
// are left untouched.
type UpdateProfileParams struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Country   *string `json:"country,omitempty"`
}

// UpdateProfile edits the caller's profile and returns the full
// replacement record.
func (s *Service) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}

	if err := s.api.Patch(ctx, "/api/v1/users/updateMe", params, &out); err != nil {
		return nil, err
	}

	return out.User, nil
}

// UpdatePassword changes the caller's password.
func (s *Service) UpdatePassword(ctx context.Context, current, next string) error {
	body := map[string]string{
		"passwordCurrent": current,
		"password":        next,
	}

	return s.api.Patch(ctx, "/api/v1/users/updateMyPassword", body, nil)
}
