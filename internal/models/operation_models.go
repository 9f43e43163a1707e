package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FundRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type TransferRequest struct {
	ReceiverWalletID uuid.UUID       `json:"receiverWalletId"`
	Amount           decimal.Decimal `json:"amount"`
}

type OnboardUserRequest struct {
	FirstName  string  `json:"first_name"`
	MiddleName *string `json:"middle_name,omitempty"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
}

type WithdrawalResult struct {
	Message  string          `json:"message"`
	WalletID uuid.UUID       `json:"walletId"`
	Amount   decimal.Decimal `json:"amount"`
}

type TransferResult struct {
	Message          string          `json:"message"`
	Amount           decimal.Decimal `json:"amount"`
	SenderWalletID   uuid.UUID       `json:"senderWalletId"`
	ReceiverWalletID uuid.UUID       `json:"receiverWalletId"`
}

type BalanceResponse struct {
	WalletID uuid.UUID       `json:"walletId"`
	Balance  decimal.Decimal `json:"balance"`
}
