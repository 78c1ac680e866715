package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	ParcelStatusUnpaid = "unpaid"
	ParcelStatusPaid   = "paid"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"size:128;uniqueIndex;not null"`
	Name      string `gorm:"size:128"`
	Role      string `gorm:"size:32;not null"` // user, admin
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Parcel struct {
	ID string `gorm:"primaryKey;size:64;not null"`

	SenderName      string `gorm:"size:128;not null"`
	SenderEmail     string `gorm:"size:128;index;not null"`
	SenderPhone     string `gorm:"size:32"`
	SenderAddress   string `gorm:"size:256"`
	ReceiverName    string `gorm:"size:128;not null"`
	ReceiverPhone   string `gorm:"size:32"`
	ReceiverAddress string `gorm:"size:256;not null"`

	ParcelType string  `gorm:"size:64"`
	WeightKg   float64 `gorm:"not null"`
	Cost       float64 `gorm:"not null"`               // declared cost, local currency
	Status     string  `gorm:"size:16;index;not null"` // unpaid, paid

	TrackingNo            *string  `gorm:"size:16"` // assigned at payment time
	PaidAmount            *float64 // settlement currency, decimal units
	PaymentMethod         string   `gorm:"size:32"` // card, cash
	StripeSessionID       *string  `gorm:"size:128"`
	StripePaymentIntentID *string  `gorm:"size:128"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Payment struct {
	ID       uint   `gorm:"primaryKey"`
	ParcelID string `gorm:"size:64;index;not null"`
	Email    string `gorm:"size:128;index;not null"` // payer

	Amount    float64 `gorm:"not null"` // local currency
	AmountUSD float64 `gorm:"not null"` // charged settlement amount

	// Unique index is the idempotency guard: a second insert for the same
	// checkout session fails with a duplicate-key error instead of racing
	// a prior existence check. Nullable so cash settlements don't collide.
	StripeSessionID       *string `gorm:"size:128;uniqueIndex"`
	StripePaymentIntentID *string `gorm:"size:128"`
	StripeTransactionID   *string `gorm:"size:128"` // charge id
	CardBrand             *string `gorm:"size:32"`
	CardLast4             *string `gorm:"size:8"`

	TrackingNo string `gorm:"size:16;not null"`
	CreatedAt  time.Time
}
