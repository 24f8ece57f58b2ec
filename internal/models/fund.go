package models

import (
	"time"
)

type FundSource string

const (
	FundSourceWebhook FundSource = "webhook"
	FundSourceClient  FundSource = "client"
)

// Fund is an append-only ledger entry for one captured payment. Amount is
// stored in minor currency units.
type Fund struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	Amount    int64      `gorm:"not null" json:"amount"`
	Currency  string     `gorm:"type:varchar(3);not null;default:'INR'" json:"currency"`
	DonorName *string    `gorm:"type:varchar(255)" json:"donor_name"`
	Message   *string    `gorm:"type:text" json:"message"`
	PaymentID string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"payment_id"`
	Source    FundSource `gorm:"type:varchar(20);not null" json:"source"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}
