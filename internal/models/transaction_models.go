package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	FundTransaction     TransactionType = "FUND"
	TransferTransaction TransactionType = "TRANSFER"
	WithdrawTransaction TransactionType = "WITHDRAW"
)

func (tt TransactionType) IsValid() bool {
	switch tt {
	case FundTransaction, TransferTransaction, WithdrawTransaction:
		return true
	}
	return false
}

// Transaction is one append-only ledger row. Amount is signed: positive for
// credits, negative for debits. TargetWalletID is set only for transfers and
// points at the counterparty wallet.
type Transaction struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	WalletID       uuid.UUID       `json:"wallet_id" db:"wallet_id"`
	Type           TransactionType `json:"type" db:"type"`
	Amount         decimal.Decimal `json:"amount" db:"amount"`
	TargetWalletID *uuid.UUID      `json:"target_wallet_id,omitempty" db:"target_wallet_id"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// HistoryPage is one page of a wallet's transaction history. Total is the
// full matching row count, not the page size.
type HistoryPage struct {
	Data  []Transaction `json:"data"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int64         `json:"total"`
}
