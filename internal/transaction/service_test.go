package transaction_test

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
	"github.com/markoswell/optivest/internal/transaction"
)

func respondWith(payload string) func(context.Context, string, any) error {
	return func(_ context.Context, _ string, out any) error {
		return json.Unmarshal([]byte(payload), out)
	}
}

func TestService_ListMine(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *api.MockDoer)
		wantLen   int
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *api.MockDoer) {
				m.EXPECT().
					Get(gomock.Any(), "/api/v1/users/me/transactions", gomock.Any()).
					DoAndReturn(respondWith(`{"transactions":[{"reference":"TX-1"},{"reference":"TX-2"}]}`))
			},
			wantLen: 2,
		},
		{
			name: "Error",
			setupMock: func(m *api.MockDoer) {
				m.EXPECT().
					Get(gomock.Any(), "/api/v1/users/me/transactions", gomock.Any()).
					Return(errors.New("api down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			doer := api.NewMockDoer(ctrl)
			tt.setupMock(doer)

			svc := transaction.NewService(doer)
			got, err := svc.ListMine(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_Approve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	doer := api.NewMockDoer(ctrl)
	doer.EXPECT().
		Patch(gomock.Any(), fmt.Sprintf("/api/v1/transactions/%s/action/approve", id), nil, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ any, out any) error {
			payload := fmt.Sprintf(`{"transaction":{"id":%q,"status":"success"}}`, id)
			return json.Unmarshal([]byte(payload), out)
		})

	svc := transaction.NewService(doer)
	got, err := svc.Approve(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, transaction.StatusSuccess, got.Status)
}

func TestService_Decline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	doer := api.NewMockDoer(ctrl)
	doer.EXPECT().
		Patch(gomock.Any(), fmt.Sprintf("/api/v1/transactions/%s/action/decline", id), nil, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ any, out any) error {
			payload := fmt.Sprintf(`{"transaction":{"id":%q,"status":"declined"}}`, id)
			return json.Unmarshal([]byte(payload), out)
		})

	svc := transaction.NewService(doer)
	got, err := svc.Decline(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, transaction.StatusDeclined, got.Status)
}

func TestService_CreateWithdrawal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bankID := uuid.New()
	doer := api.NewMockDoer(ctrl)
	doer.EXPECT().
		PostForm(gomock.Any(), "/api/v1/users/me/transactions", gomock.Any(), nil, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, fields map[string]string, _ *api.Attachment, out any) error {
			assert.Equal(t, "withdrawal", fields["type"])
			assert.Equal(t, "150", fields["amount"])
			assert.Equal(t, "balance", fields["payOption"])
			assert.Equal(t, bankID.String(), fields["bank_id"])

			return json.Unmarshal([]byte(`{"transaction":{"reference":"WD-1","status":"pending"}}`), out)
		})

	svc := transaction.NewService(doer)
	got, err := svc.CreateWithdrawal(context.Background(), transaction.WithdrawalParams{
		Amount: decimal.NewFromInt(150),
		Source: transaction.SourceBalance,
		BankID: bankID,
	})

	require.NoError(t, err)
	assert.Equal(t, "WD-1", got.Reference)
	assert.Equal(t, transaction.StatusPending, got.Status)
}

func TestTransaction_SearchFields(t *testing.T) {
	tx := &transaction.Transaction{
		Reference: "TX-9",
		Amount:    decimal.NewFromInt(500),
	}

	fields := tx.SearchFields()

	require.Len(t, fields, 3)
	assert.Equal(t, "TX-9", fields[0])
	assert.Equal(t, "", fields[1], "missing owner must come through as an empty string")
	assert.Equal(t, "500", fields[2])
}
