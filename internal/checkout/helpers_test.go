package checkout_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/popcrumbs-alex/silver2ctfunnel/internal/checkout"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/dto"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/model"
)

// fakeGateway records gateway traffic and keeps created orders in memory.
type fakeGateway struct {
	mu            sync.Mutex
	orders        map[string]*model.Order
	createInputs  []dto.CreateOrderInput
	closeInputs   []dto.CloseOrderInput
	createFailure string
	createErr     error
	seq           int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{orders: map[string]*model.Order{}}
}

func (g *fakeGateway) CreateOrder(_ context.Context, input dto.CreateOrderInput) (*dto.OrderResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.createInputs = append(g.createInputs, input)

	if g.createErr != nil {
		return nil, g.createErr
	}
	if g.createFailure != "" {
		return &dto.OrderResponse{Success: false, Error: g.createFailure}, nil
	}

	g.seq++
	products := make([]model.OrderProduct, 0, len(input.Products))
	for _, p := range input.Products {
		quantity := p.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		products = append(products, model.OrderProduct{
			Title:       p.Title,
			Price:       p.Price,
			IsRecurring: p.IsRecurring,
			Quantity:    quantity,
		})
	}
	order := &model.Order{
		ID:         fmt.Sprintf("order-%d", g.seq),
		Email:      input.Email,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Address:    input.Address,
		City:       input.City,
		State:      input.State,
		Zip:        input.Zip,
		Products:   products,
		OrderTotal: input.OrderTotal,
		OrderType:  input.OrderType,
		Status:     model.OrderStatusCreated,
		FunnelName: input.FunnelName,
		EfAffID:    input.EfAffID,
	}
	g.orders[order.ID] = order

	return &dto.OrderResponse{Success: true, Order: order}, nil
}

func (g *fakeGateway) FindOrder(_ context.Context, input dto.FindOrderInput) (*dto.OrderResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	order, ok := g.orders[input.ID]
	if !ok {
		return &dto.OrderResponse{Success: false, Error: "order not found"}, nil
	}
	return &dto.OrderResponse{Success: true, Order: order}, nil
}

func (g *fakeGateway) UpdateOrder(_ context.Context, input dto.UpdateOrderInput) (*dto.OrderResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	order, ok := g.orders[input.ID]
	if !ok {
		return &dto.OrderResponse{Success: false, Error: "order not found"}, nil
	}
	return &dto.OrderResponse{Success: true, Order: order}, nil
}

func (g *fakeGateway) CloseOrder(_ context.Context, input dto.CloseOrderInput) (*dto.OrderResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closeInputs = append(g.closeInputs, input)

	order, ok := g.orders[input.ID]
	if !ok {
		return &dto.OrderResponse{Success: false, Error: "order not found"}, nil
	}
	order.Status = model.OrderStatusClosed
	return &dto.OrderResponse{Success: true, Order: order}, nil
}

func (g *fakeGateway) lastCreate() dto.CreateOrderInput {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.createInputs[len(g.createInputs)-1]
}

// fakeProvider stands in for the PayPal REST client.
type fakeProvider struct {
	mu            sync.Mutex
	capture       *model.PaypalCapture
	orderErr      error
	captureErr    error
	subErr        error
	createdUnits  [][]model.PaypalPurchaseUnit
	subscriptions []string
}

func (f *fakeProvider) CreateOrder(_ context.Context, units []model.PaypalPurchaseUnit) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.orderErr != nil {
		return "", f.orderErr
	}
	f.createdUnits = append(f.createdUnits, units)
	return "PAYPAL-ORDER-1", nil
}

func (f *fakeProvider) CaptureOrder(_ context.Context, orderID string) (*model.PaypalCapture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	if f.capture != nil {
		return f.capture, nil
	}
	return &model.PaypalCapture{ID: orderID, Status: "COMPLETED"}, nil
}

func (f *fakeProvider) CreateSubscription(_ context.Context, planID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subErr != nil {
		return "", f.subErr
	}
	f.subscriptions = append(f.subscriptions, planID)
	return "I-SUB12345", nil
}

func testDraft() checkout.DraftOrder {
	return checkout.DraftOrder{
		ContactInfo: checkout.ContactInfo{
			Email:     "a@b.com",
			FirstName: "A",
			LastName:  "B",
		},
		ShippingInfo: checkout.ShippingInfo{
			Address: "1 Main St",
			City:    "X",
			State:   "Y",
			Zip:     "00000",
		},
		Products: []checkout.Product{
			{Title: "Ring", Price: decimal.NewFromFloat(49.99)},
		},
		OrderTotal: decimal.NewFromFloat(49.99),
	}
}
