package dto

import (
	"github.com/shopspring/decimal"

	"github.com/popcrumbs-alex/silver2ctfunnel/internal/model"
)

type ProductInput struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	IsRecurring bool            `json:"isRecurring"`
	// Defaults to 1 when the payment adapter did not set it.
	Quantity int `json:"quantity,omitempty"`
}

type FindOrderInput struct {
	ID string `json:"id"`
}

type CreateOrderInput struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`

	Products   []ProductInput  `json:"products"`
	OrderTotal decimal.Decimal `json:"orderTotal"`
	OrderType  string          `json:"orderType"`

	// Card path only; never persisted.
	CreditCardNumber string `json:"creditCardNumber,omitempty"`
	Expiry           string `json:"expiry,omitempty"`
	Cvc              string `json:"cvc,omitempty"`

	// Upsell path: charge the payment method vaulted on this earlier order
	// instead of fresh card fields.
	SourceOrderID string `json:"source_order_id,omitempty"`

	// PayPal path only.
	PaypalTransactionID string `json:"paypal_transaction_id,omitempty"`
	PaypalPayerID       string `json:"paypal_payer_id,omitempty"`

	FunnelName string `json:"funnel_name,omitempty"`
	EfAffID    string `json:"ef_aff_id,omitempty"`

	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// UpdateOrderInput merges the supplied fields into an existing order.
// Nil pointers leave the stored value untouched.
type UpdateOrderInput struct {
	ID string `json:"id"`

	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`

	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	Zip     *string `json:"zip,omitempty"`

	Products   []ProductInput   `json:"products,omitempty"`
	OrderTotal *decimal.Decimal `json:"orderTotal,omitempty"`
}

type CloseOrderInput struct {
	ID string `json:"id"`
}

// OrderResponse is the envelope every gateway operation returns.
type OrderResponse struct {
	Success bool         `json:"success"`
	Order   *model.Order `json:"Order,omitempty"`
	Error   string       `json:"error,omitempty"`
}
