package checkout

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/popcrumbs-alex/silver2ctfunnel/internal/client"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/dto"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/model"
)

// FormattedAddress is the outbound contact/shipping data after merging the
// capture response with the draft order.
type FormattedAddress struct {
	Email     string
	FirstName string
	LastName  string
	Address   string
	City      string
	State     string
	Zip       string
}

// mapCaptureAddress prefers the PayPal-returned payer/shipping data and
// falls back to the draft field-by-field. A nil capture falls back
// entirely.
func mapCaptureAddress(capture *model.PaypalCapture, draft DraftOrder) FormattedAddress {
	pick := func(primary, fallback string) string {
		if primary != "" {
			return primary
		}
		return fallback
	}

	var payer model.PaypalPayer
	var shipping model.PaypalShipping
	if capture != nil {
		payer = capture.Payer
		if len(capture.PurchaseUnits) > 0 {
			shipping = capture.PurchaseUnits[0].Shipping
		}
	}

	return FormattedAddress{
		Email:     pick(payer.Email, draft.ContactInfo.Email),
		FirstName: pick(payer.Name.GivenName, draft.ContactInfo.FirstName),
		LastName:  pick(payer.Name.Surname, draft.ContactInfo.LastName),
		Address:   pick(shipping.Address.AddressLine1, draft.ShippingInfo.Address),
		City:      pick(shipping.Address.AdminArea2, draft.ShippingInfo.City),
		State:     pick(shipping.Address.AdminArea1, draft.ShippingInfo.State),
		Zip:       pick(shipping.Address.PostalCode, draft.ShippingInfo.Zip),
	}
}

// hasRecurringItem decides between the one-time and subscription flows.
func hasRecurringItem(products []Product) bool {
	for _, p := range products {
		if p.IsRecurring {
			return true
		}
	}
	return false
}

// buildPurchaseUnits itemizes the draft for the one-time flow: USD, amounts
// formatted to exactly two decimals, each product plus a zero-cost shipping
// line.
func buildPurchaseUnits(draft DraftOrder) []model.PaypalPurchaseUnit {
	total := draft.OrderTotal.StringFixed(2)

	items := make([]model.PaypalItem, 0, len(draft.Products)+1)
	for _, p := range draft.Products {
		items = append(items, model.PaypalItem{
			Name: p.Title,
			UnitAmount: model.PaypalMoney{
				Currency: "USD",
				Value:    p.Price.StringFixed(2),
			},
			Quantity: "1",
		})
	}
	if len(items) > 0 {
		items = append(items, model.PaypalItem{
			Name: "Shipping",
			UnitAmount: model.PaypalMoney{
				Currency: "USD",
				Value:    "0.00",
			},
			Quantity: "1",
		})
	}

	return []model.PaypalPurchaseUnit{
		{
			Amount: model.PaypalAmount{
				Currency: "USD",
				Value:    total,
				Breakdown: &model.PaypalBreakdown{
					ItemTotal: model.PaypalMoney{
						Currency: "USD",
						Value:    total,
					},
				},
			},
			Shipping: model.PaypalShipping{
				Name: model.PaypalShippingName{
					FullName: draft.ContactInfo.FirstName + " " + draft.ContactInfo.LastName,
				},
				Address: model.PaypalAddress{
					AddressLine1: draft.ShippingInfo.Address,
					AdminArea2:   draft.ShippingInfo.City,
					PostalCode:   draft.ShippingInfo.Zip,
					CountryCode:  "US",
				},
			},
			Items: items,
		},
	}
}

type PayPalAdapter struct {
	provider client.PaypalClient
	gateway  OrderGateway
	alerts   *AlertSink
	storage  Storage
	catalog  *Catalog
	planID   string
	loading  atomic.Bool
}

func NewPayPalAdapter(provider client.PaypalClient, gateway OrderGateway, alerts *AlertSink, storage Storage, catalog *Catalog, planID string) *PayPalAdapter {
	return &PayPalAdapter{
		provider: provider,
		gateway:  gateway,
		alerts:   alerts,
		storage:  storage,
		catalog:  catalog,
		planID:   planID,
	}
}

func (a *PayPalAdapter) OrderType() string {
	return model.OrderTypePaypal
}

func (a *PayPalAdapter) AttemptPayment(ctx context.Context, draft DraftOrder) (*PaymentResult, error) {
	// Suppress duplicate submissions while a round-trip is outstanding;
	// this mirrors hiding the provider widget behind the loading state.
	if !a.loading.CompareAndSwap(false, true) {
		return nil, ErrPaymentInFlight
	}
	defer a.loading.Store(false)

	var (
		transactionID string
		payerID       string
		capture       *model.PaypalCapture
	)

	if hasRecurringItem(draft.Products) {
		subscriptionID, err := a.provider.CreateSubscription(ctx, a.planID)
		if err != nil {
			a.alerts.Danger(providerErrorMessage(err))
			return nil, err
		}
		transactionID = subscriptionID
	} else {
		orderID, err := a.provider.CreateOrder(ctx, buildPurchaseUnits(draft))
		if err != nil {
			a.alerts.Danger(providerErrorMessage(err))
			return nil, err
		}

		capture, err = a.provider.CaptureOrder(ctx, orderID)
		if err != nil {
			a.alerts.Danger(providerErrorMessage(err))
			return nil, err
		}
		transactionID = capture.ID
		payerID = capture.Payer.PayerID
	}

	formatted := mapCaptureAddress(capture, draft)

	input := dto.CreateOrderInput{
		Email:     formatted.Email,
		FirstName: formatted.FirstName,
		LastName:  formatted.LastName,
		Address:   formatted.Address,
		City:      formatted.City,
		State:     formatted.State,
		Zip:       formatted.Zip,

		Products:   draftProductInputs(draft.Products),
		OrderTotal: draft.OrderTotal,
		OrderType:  model.OrderTypePaypal,

		PaypalTransactionID: transactionID,
		PaypalPayerID:       payerID,

		FunnelName: a.catalog.FunnelName,
		EfAffID:    affiliateID(a.storage),

		IdempotencyKey: uuid.NewString(),
	}

	resp, err := a.gateway.CreateOrder(ctx, input)
	if err != nil {
		a.alerts.Danger(err.Error())
		return nil, err
	}
	if !resp.Success {
		a.alerts.Danger(resp.Error)
		return nil, errors.New(resp.Error)
	}

	return &PaymentResult{OrderID: resp.Order.ID}, nil
}

// providerErrorMessage normalizes provider failures to a user-facing
// message.
func providerErrorMessage(err error) string {
	var paypalErr *client.PaypalError
	if errors.As(err, &paypalErr) {
		return paypalErr.Error()
	}
	return "Paypal error: " + err.Error()
}
