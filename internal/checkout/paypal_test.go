package checkout_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popcrumbs-alex/silver2ctfunnel/internal/checkout"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/model"
)

const testPlanID = "P-16S76074SB539451CMIKQKZI"

func newPayPalAdapter(gw *fakeGateway, provider *fakeProvider, alerts *checkout.AlertSink) *checkout.PayPalAdapter {
	return checkout.NewPayPalAdapter(
		provider, gw, alerts,
		checkout.NewMemoryStorage(), checkout.DefaultCatalog(), testPlanID,
	)
}

func TestPayPalAdapterOneTimePurchase(t *testing.T) {
	gw := newFakeGateway()
	provider := &fakeProvider{
		capture: &model.PaypalCapture{
			ID: "TX-900",
			Payer: model.PaypalPayer{
				PayerID: "PAYER-1",
				Email:   "payer@paypal.example",
				Name:    model.PaypalPayerName{GivenName: "Pat", Surname: "Payer"},
			},
			PurchaseUnits: []model.PaypalCaptureUnit{{
				Shipping: model.PaypalShipping{Address: model.PaypalAddress{
					AddressLine1: "9 Paypal Way",
					AdminArea2:   "PPCity",
					AdminArea1:   "PP",
					PostalCode:   "11111",
				}},
			}},
		},
	}
	adapter := newPayPalAdapter(gw, provider, checkout.NewAlertSink(16))

	result, err := adapter.AttemptPayment(context.Background(), testDraft())
	require.NoError(t, err)
	require.NotNil(t, result)

	// never the subscription flow for a cart without recurring items
	assert.Empty(t, provider.subscriptions)
	require.Len(t, provider.createdUnits, 1)

	unit := provider.createdUnits[0][0]
	assert.Equal(t, "USD", unit.Amount.Currency)
	assert.Equal(t, "49.99", unit.Amount.Value)
	assert.Equal(t, "49.99", unit.Amount.Breakdown.ItemTotal.Value)

	// each product plus the zero-cost shipping line
	require.Len(t, unit.Items, 2)
	assert.Equal(t, "Ring", unit.Items[0].Name)
	assert.Equal(t, "49.99", unit.Items[0].UnitAmount.Value)
	assert.Equal(t, "Shipping", unit.Items[1].Name)
	assert.Equal(t, "0.00", unit.Items[1].UnitAmount.Value)

	sent := gw.lastCreate()
	assert.Equal(t, model.OrderTypePaypal, sent.OrderType)
	assert.Equal(t, "TX-900", sent.PaypalTransactionID)
	assert.Equal(t, "PAYER-1", sent.PaypalPayerID)

	// capture data wins over the draft when present
	assert.Equal(t, "payer@paypal.example", sent.Email)
	assert.Equal(t, "9 Paypal Way", sent.Address)
}

func TestPayPalAdapterFallsBackFieldByField(t *testing.T) {
	gw := newFakeGateway()
	provider := &fakeProvider{
		capture: &model.PaypalCapture{
			ID: "TX-901",
			Payer: model.PaypalPayer{
				PayerID: "PAYER-2",
				Email:   "payer@paypal.example",
			},
			// capture omits shipping.address entirely
			PurchaseUnits: []model.PaypalCaptureUnit{{}},
		},
	}
	adapter := newPayPalAdapter(gw, provider, checkout.NewAlertSink(16))

	draft := testDraft()
	_, err := adapter.AttemptPayment(context.Background(), draft)
	require.NoError(t, err)

	sent := gw.lastCreate()
	// present fields come from the capture, missing ones from the draft
	assert.Equal(t, "payer@paypal.example", sent.Email)
	assert.Equal(t, draft.ContactInfo.FirstName, sent.FirstName)
	assert.Equal(t, draft.ShippingInfo.Address, sent.Address)
	assert.Equal(t, draft.ShippingInfo.City, sent.City)
	assert.Equal(t, draft.ShippingInfo.Zip, sent.Zip)
}

func TestPayPalAdapterRecurringCartUsesSubscriptionFlow(t *testing.T) {
	gw := newFakeGateway()
	provider := &fakeProvider{}
	adapter := newPayPalAdapter(gw, provider, checkout.NewAlertSink(16))

	draft := testDraft()
	draft.Products = append(draft.Products, checkout.Product{
		Title:       "Jewelry Club Membership",
		Price:       decimal.NewFromFloat(24.95),
		IsRecurring: true,
	})
	draft.OrderTotal = decimal.NewFromFloat(74.94)

	result, err := adapter.AttemptPayment(context.Background(), draft)
	require.NoError(t, err)
	require.NotNil(t, result)

	// subscription flow only, never the one-time flow
	require.Len(t, provider.subscriptions, 1)
	assert.Equal(t, testPlanID, provider.subscriptions[0])
	assert.Empty(t, provider.createdUnits)

	sent := gw.lastCreate()
	assert.Equal(t, model.OrderTypePaypal, sent.OrderType)
	assert.Equal(t, "I-SUB12345", sent.PaypalTransactionID)
	// no capture response, every field falls back to the draft
	assert.Equal(t, draft.ContactInfo.Email, sent.Email)
	assert.Equal(t, draft.ShippingInfo.Address, sent.Address)
}

func TestPayPalAdapterSurfacesProviderError(t *testing.T) {
	gw := newFakeGateway()
	provider := &fakeProvider{orderErr: assert.AnError}
	alerts := checkout.NewAlertSink(16)
	adapter := newPayPalAdapter(gw, provider, alerts)

	result, err := adapter.AttemptPayment(context.Background(), testDraft())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, gw.createInputs)

	emitted := alerts.Drain()
	require.Len(t, emitted, 1)
	assert.Equal(t, checkout.AlertDanger, emitted[0].Type)
	assert.Contains(t, emitted[0].Message, "Paypal error")
}
