package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/services"
)

func TestWithdrawHandler(t *testing.T) {
	walletID := uuid.New()

	tests := []struct {
		name         string
		body         string
		mockSetup    func(svc *MockWithdrawSubmitter)
		expectedCode int
	}{
		{
			name: "success",
			body: `{"amount": "40.00", "idempotency_token": "tok-w"}`,
			mockSetup: func(svc *MockWithdrawSubmitter) {
				svc.EXPECT().
					SubmitWithdraw(gomock.Any(), walletID, decimalArg("40.00"), "tok-w").
					Return("tok-w", nil)
			},
			expectedCode: http.StatusAccepted,
		},
		{
			name: "wallet not found",
			body: `{"amount": "40.00", "idempotency_token": "tok-w2"}`,
			mockSetup: func(svc *MockWithdrawSubmitter) {
				svc.EXPECT().
					SubmitWithdraw(gomock.Any(), walletID, gomock.Any(), "tok-w2").
					Return("", services.ErrWalletNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "duplicate token",
			body: `{"amount": "40.00", "idempotency_token": "tok-w3"}`,
			mockSetup: func(svc *MockWithdrawSubmitter) {
				svc.EXPECT().
					SubmitWithdraw(gomock.Any(), walletID, gomock.Any(), "tok-w3").
					Return("", services.ErrDuplicateToken)
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockWithdrawSubmitter(ctrl)
			tt.mockSetup(svc)

			r := chi.NewRouter()
			r.Post("/wallets/{walletId}/withdraw", NewWithdrawHandler(svc))

			req := httptest.NewRequest(http.MethodPost,
				"/wallets/"+walletID.String()+"/withdraw",
				bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusAccepted {
				var resp SubmitResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "queued", resp.Message)
			}
		})
	}
}
