package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderTypeCredit = "credit"
	OrderTypePaypal = "paypal"
)

const (
	OrderStatusCreated = "CREATED"
	OrderStatusUpdated = "UPDATED"
	OrderStatusClosed  = "CLOSED"
)

type Order struct {
	ID        string `gorm:"primaryKey;size:64;not null" json:"id"`
	Email     string `gorm:"size:255;not null" json:"email"`
	FirstName string `gorm:"size:255;not null" json:"firstName"`
	LastName  string `gorm:"size:255;not null" json:"lastName"`

	Address string `gorm:"size:255;not null" json:"address"`
	City    string `gorm:"size:128;not null" json:"city"`
	State   string `gorm:"size:64;not null" json:"state"`
	Zip     string `gorm:"size:32;not null" json:"zip"`

	Products   []OrderProduct  `gorm:"foreignKey:OrderID" json:"products"`
	OrderTotal decimal.Decimal `gorm:"type:numeric;not null" json:"orderTotal"`
	OrderType  string          `gorm:"size:16;not null" json:"orderType"` // credit | paypal
	Status     string          `gorm:"size:16;index;not null" json:"status"`

	PaypalTransactionID string `gorm:"size:64" json:"paypal_transaction_id,omitempty"`
	PaypalPayerID       string `gorm:"size:64" json:"paypal_payer_id,omitempty"`

	FunnelName string `gorm:"size:128" json:"funnel_name,omitempty"`
	EfAffID    string `gorm:"size:128" json:"ef_aff_id,omitempty"`

	// Client-generated token used to dedupe duplicate create submissions.
	IdempotencyKey string `gorm:"size:64;index" json:"-"`

	// Processor vault token; credit upsells charge it without re-collecting
	// card details. Never serialized to clients.
	PaymentToken string `gorm:"size:64" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderProduct struct {
	ID      uint   `gorm:"primaryKey" json:"-"`
	OrderID string `gorm:"size:64;index;not null" json:"-"`

	Title       string          `gorm:"size:255;not null" json:"title"`
	Price       decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	IsRecurring bool            `gorm:"not null" json:"isRecurring"`
	Quantity    int             `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `json:"-"`
}

// Closed reports whether the order reached its terminal state.
func (o *Order) Closed() bool {
	return o.Status == OrderStatusClosed
}
