package checkout_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popcrumbs-alex/silver2ctfunnel/internal/checkout"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/model"
)

func TestContinuationRoundTrip(t *testing.T) {
	storage := checkout.NewMemoryStorage()

	_, ok := checkout.LoadContinuation(storage)
	assert.False(t, ok)

	checkout.SaveContinuation(storage, checkout.ContinuationContext{
		OrderID:   "order-1",
		OrderType: model.OrderTypeCredit,
	})

	cont, ok := checkout.LoadContinuation(storage)
	require.True(t, ok)
	assert.Equal(t, "order-1", cont.OrderID)
	assert.Equal(t, model.OrderTypeCredit, cont.OrderType)
}

func TestControllerFullFunnel(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway()
	alerts := checkout.NewAlertSink(16)
	storage := checkout.NewMemoryStorage()
	catalog := checkout.DefaultCatalog()

	controller := checkout.NewController(gw, alerts, storage, catalog)
	assert.Equal(t, checkout.StageAwaitingPayment, controller.Stage())

	adapter := checkout.NewCardAdapter(gw, alerts, storage, catalog, &checkout.CardForm{})
	require.NoError(t, controller.Checkout(ctx, adapter, testDraft()))

	assert.Equal(t, checkout.StageOrderPlaced, controller.Stage())
	assert.Equal(t, catalog.Offers[0].Page, controller.CurrentPage())

	cont, ok := checkout.LoadContinuation(storage)
	require.True(t, ok)
	assert.Equal(t, model.OrderTypeCredit, cont.OrderType)
	originalID := cont.OrderID

	// first upsell accepted: a new independent order, same order type,
	// shopper context reused without re-collecting anything
	require.NoError(t, controller.AcceptOffer(ctx))
	require.Len(t, gw.createInputs, 2)
	upsell := gw.lastCreate()
	assert.Equal(t, model.OrderTypeCredit, upsell.OrderType)
	assert.Equal(t, "a@b.com", upsell.Email)
	assert.Equal(t, "1 Main St", upsell.Address)
	assert.Empty(t, upsell.CreditCardNumber)
	assert.Equal(t, originalID, upsell.SourceOrderID)
	require.Len(t, upsell.Products, 1)
	assert.Equal(t, catalog.Offers[0].Product.Title, upsell.Products[0].Title)

	assert.Equal(t, checkout.StageUpsell, controller.Stage())
	assert.Equal(t, catalog.Offers[1].Page, controller.CurrentPage())

	// second upsell declined: no mutation, funnel finishes
	require.NoError(t, controller.DeclineOffer(ctx))
	assert.Equal(t, checkout.StageDone, controller.Stage())
	assert.Equal(t, catalog.ThankYouPage, controller.CurrentPage())
	require.Len(t, gw.createInputs, 2)

	// the original order is closed on the way out
	require.Len(t, gw.closeInputs, 1)
	assert.Equal(t, originalID, gw.closeInputs[0].ID)
	assert.Equal(t, model.OrderStatusClosed, gw.orders[originalID].Status)
}

func TestControllerStaysOnAwaitingPaymentAfterFailure(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway()
	gw.createFailure = "orderTotal must not be negative"
	alerts := checkout.NewAlertSink(16)
	storage := checkout.NewMemoryStorage()
	catalog := checkout.DefaultCatalog()

	controller := checkout.NewController(gw, alerts, storage, catalog)
	adapter := checkout.NewCardAdapter(gw, alerts, storage, catalog, &checkout.CardForm{})

	err := controller.Checkout(ctx, adapter, testDraft())
	require.Error(t, err)

	assert.Equal(t, checkout.StageAwaitingPayment, controller.Stage())
	_, ok := checkout.LoadContinuation(storage)
	assert.False(t, ok)
}

func TestControllerUpsellFailureKeepsPage(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway()
	alerts := checkout.NewAlertSink(16)
	storage := checkout.NewMemoryStorage()
	catalog := checkout.DefaultCatalog()

	controller := checkout.NewController(gw, alerts, storage, catalog)
	adapter := checkout.NewCardAdapter(gw, alerts, storage, catalog, &checkout.CardForm{})
	require.NoError(t, controller.Checkout(ctx, adapter, testDraft()))

	gw.createFailure = "gateway down"
	err := controller.AcceptOffer(ctx)
	require.Error(t, err)

	// same page, no automatic retry, original order untouched
	assert.Equal(t, catalog.Offers[0].Page, controller.CurrentPage())
	assert.NotEqual(t, checkout.StageDone, controller.Stage())

	emitted := alerts.Drain()
	require.NotEmpty(t, emitted)
	assert.Equal(t, "gateway down", emitted[len(emitted)-1].Message)
}

func TestControllerRejectsSecondCheckout(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway()
	alerts := checkout.NewAlertSink(16)
	storage := checkout.NewMemoryStorage()
	catalog := checkout.DefaultCatalog()

	controller := checkout.NewController(gw, alerts, storage, catalog)
	adapter := checkout.NewCardAdapter(gw, alerts, storage, catalog, &checkout.CardForm{})

	require.NoError(t, controller.Checkout(ctx, adapter, testDraft()))
	require.Error(t, controller.Checkout(ctx, adapter, testDraft()))
	require.Len(t, gw.createInputs, 1)
}
