package client

import (
	"context"
	"fmt"

	"github.com/braintree-go/braintree-go"
	"github.com/shopspring/decimal"

	"github.com/popcrumbs-alex/silver2ctfunnel/internal/config"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/service"
)

type braintreeChargerImpl struct {
	gateway *braintree.Braintree
}

// NewBraintreeCharger initializes the Braintree SDK gateway behind the
// service layer's CardCharger port.
func NewBraintreeCharger(cfg *config.Braintree) service.CardCharger {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)

	return &braintreeChargerImpl{
		gateway: gateway,
	}
}

// Charge vaults the card on a new customer record, then settles against the
// vaulted token. The token goes back to the caller so upsell charges can
// reuse the payment method.
func (c *braintreeChargerImpl) Charge(ctx context.Context, card service.CardDetails, amount decimal.Decimal) (string, string, error) {
	if len(card.Expiry) != 4 {
		return "", "", fmt.Errorf("invalid expiry format, want MMYY")
	}

	req := &braintree.CustomerRequest{
		FirstName: card.FirstName,
		LastName:  card.LastName,
		Email:     card.Email,
		CreditCard: &braintree.CreditCard{
			Number:          card.Number,
			ExpirationMonth: card.Expiry[:2],
			ExpirationYear:  card.Expiry[2:],
			CVV:             card.CVC,
		},
	}

	customer, err := c.gateway.Customer().Create(ctx, req)
	if err != nil {
		return "", "", fmt.Errorf("failed to vault payment method: %w", err)
	}

	if customer.DefaultPaymentMethod() == nil {
		return "", "", fmt.Errorf("no default payment method returned from vault")
	}
	paymentToken := customer.DefaultPaymentMethod().GetToken()

	transactionID, err := c.ChargeToken(ctx, paymentToken, amount)
	if err != nil {
		return "", "", err
	}

	return transactionID, paymentToken, nil
}

func (c *braintreeChargerImpl) ChargeToken(ctx context.Context, paymentToken string, amount decimal.Decimal) (string, error) {
	// Braintree expects NewDecimal(unscaled, scale). For 2 decimal places:
	// "49.99" * 100 = 4999 -> braintree.NewDecimal(4999, 2)
	cents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	btAmount := braintree.NewDecimal(cents, 2)

	req := &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             btAmount,
		PaymentMethodToken: paymentToken,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true, // captures the funds immediately
		},
	}

	tx, err := c.gateway.Transaction().Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("transaction creation failed: %w", err)
	}

	if tx.Status == braintree.TransactionStatusProcessorDeclined {
		return "", fmt.Errorf("transaction declined by processor: %s", tx.ProcessorResponseText)
	}

	return tx.Id, nil
}
