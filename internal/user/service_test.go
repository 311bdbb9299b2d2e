package user_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/markoswell/optivest/internal/api"
	"github.com/markoswell/optivest/internal/user"
)

func TestService_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	doer := api.NewMockDoer(ctrl)
	doer.EXPECT().
		Get(gomock.Any(), "/api/v1/users/me", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, out any) error {
			payload := `{"user":{"firstName":"Ada","lastName":"Okafor","role":"user","wallet":{"balance":"2500.75"}}}`
			return json.Unmarshal([]byte(payload), out)
		})

	svc := user.NewService(doer)
	me, err := svc.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Ada Okafor", me.Name())
	assert.Equal(t, user.RoleInvestor, me.Role)
	assert.True(t, me.Wallet.Balance.Equal(decimal.RequireFromString("2500.75")))
}

func TestService_UpdateStatus(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *api.MockDoer, id uuid.UUID)
		status    user.Status
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Activate",
			status: user.StatusActive,
			setupMock: func(m *api.MockDoer, id uuid.UUID) {
				m.EXPECT().
					Patch(gomock.Any(), fmt.Sprintf("/api/v1/users/%s/status", id), map[string]user.Status{"status": user.StatusActive}, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, _ any, out any) error {
						return json.Unmarshal([]byte(`{"user":{"status":"active"}}`), out)
					})
			},
		},
		{
			name:   "Error",
			status: user.StatusSuspended,
			setupMock: func(m *api.MockDoer, id uuid.UUID) {
				m.EXPECT().
					Patch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("forbidden"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			id := uuid.New()
			doer := api.NewMockDoer(ctrl)
			tt.setupMock(doer, id)

			svc := user.NewService(doer)
			got, err := svc.UpdateStatus(context.Background(), id, tt.status)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
		})
	}
}

func TestService_FundWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	params := user.FundParams{
		Wallet: "copytradeBalance",
		Amount: decimal.NewFromInt(300),
	}

	doer := api.NewMockDoer(ctrl)
	doer.EXPECT().
		Patch(gomock.Any(), fmt.Sprintf("/api/v1/users/%s/wallets", id), params, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ any, out any) error {
			return json.Unmarshal([]byte(`{"user":{"wallet":{"copytradeBalance":"300"}}}`), out)
		})

	svc := user.NewService(doer)
	got, err := svc.FundWallet(context.Background(), id, params)

	require.NoError(t, err)
	assert.True(t, got.Wallet.CopytradeBalance.Equal(decimal.NewFromInt(300)))
}

func TestBankAccount_Label(t *testing.T) {
	bank := &user.BankAccount{BankName: "First Bank", AccountNumber: "0123456789"}
	assert.Equal(t, "First Bank 0123456789", bank.Label())

	crypto := &user.BankAccount{WalletAddress: "0xabc", Network: "ERC20"}
	assert.Equal(t, "ERC20 0xabc", crypto.Label())
}
