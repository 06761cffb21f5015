package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/popcrumbs-alex/silver2ctfunnel/internal/dto"
)

// ContinuationContext is the client-persisted anchor every upsell page
// reads: the first created order's id and the payment method tag.
type ContinuationContext struct {
	OrderID   string
	OrderType string
}

func SaveContinuation(storage Storage, c ContinuationContext) {
	storage.Set(StorageKeyOrderID, c.OrderID)
	storage.Set(StorageKeyOrderType, c.OrderType)
}

func LoadContinuation(storage Storage) (ContinuationContext, bool) {
	orderID, ok := storage.Get(StorageKeyOrderID)
	if !ok || orderID == "" {
		return ContinuationContext{}, false
	}
	orderType, _ := storage.Get(StorageKeyOrderType)
	return ContinuationContext{OrderID: orderID, OrderType: orderType}, true
}

type Stage int

const (
	StageAwaitingPayment Stage = iota
	StageOrderPlaced
	StageUpsell
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageAwaitingPayment:
		return "AwaitingPayment"
	case StageOrderPlaced:
		return "OrderPlaced"
	case StageUpsell:
		return "Upsell"
	case StageDone:
		return "Done"
	default:
		return "Unknown"
	}
}

var ErrNoContinuation = errors.New("no continuation context")

// Controller drives the shopper from payment through the upsell sequence
// to the confirmation page. It is a state machine over navigation: order
// data lives server-side, only {orderId, orderType} rides along.
type Controller struct {
	mu       sync.Mutex
	gateway  OrderGateway
	alerts   *AlertSink
	storage  Storage
	catalog  *Catalog
	stage    Stage
	offerIdx int
	current  string
}

func NewController(gateway OrderGateway, alerts *AlertSink, storage Storage, catalog *Catalog) *Controller {
	return &Controller{
		gateway: gateway,
		alerts:  alerts,
		storage: storage,
		catalog: catalog,
		stage:   StageAwaitingPayment,
		current: "/",
	}
}

func (c *Controller) Stage() Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage
}

func (c *Controller) CurrentPage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Checkout runs the payment adapter against the draft. Only a successful
// create moves the shopper forward; any failure keeps the stage at
// AwaitingPayment with the error already surfaced by the adapter.
func (c *Controller) Checkout(ctx context.Context, adapter PaymentAdapter, draft DraftOrder) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stage != StageAwaitingPayment {
		return errors.New("checkout already completed")
	}

	result, err := adapter.AttemptPayment(ctx, draft)
	if err != nil {
		return err
	}

	SaveContinuation(c.storage, ContinuationContext{
		OrderID:   result.OrderID,
		OrderType: adapter.OrderType(),
	})

	c.stage = StageOrderPlaced
	if len(c.catalog.Offers) == 0 {
		c.finish(ctx)
		return nil
	}
	c.current = c.catalog.Offers[0].Page
	return nil
}

// AcceptOffer purchases the current upsell: a new independent order,
// anchored on the original order's shopper context, tagged with the
// remembered order type. No payment credentials are re-collected; the
// create carries the original order id so the server charges the payment
// method vaulted with it.
func (c *Controller) AcceptOffer(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stage != StageOrderPlaced && c.stage != StageUpsell {
		return errors.New("no offer pending")
	}

	cont, ok := LoadContinuation(c.storage)
	if !ok {
		c.alerts.Danger(ErrNoContinuation.Error())
		return ErrNoContinuation
	}

	found, err := c.gateway.FindOrder(ctx, dto.FindOrderInput{ID: cont.OrderID})
	if err != nil {
		c.alerts.Danger(err.Error())
		return err
	}
	if !found.Success {
		c.alerts.Danger(found.Error)
		return errors.New(found.Error)
	}

	offer := c.catalog.Offers[c.offerIdx]
	quantity := offer.Product.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	total := offer.Product.Price.Mul(decimal.NewFromInt(int64(quantity)))

	original := found.Order
	input := dto.CreateOrderInput{
		Email:     original.Email,
		FirstName: original.FirstName,
		LastName:  original.LastName,
		Address:   original.Address,
		City:      original.City,
		State:     original.State,
		Zip:       original.Zip,

		Products: []dto.ProductInput{{
			Title:       offer.Product.Title,
			Price:       offer.Product.Price,
			IsRecurring: offer.Product.IsRecurring,
			Quantity:    quantity,
		}},
		OrderTotal: total,
		OrderType:  cont.OrderType,

		SourceOrderID: cont.OrderID,

		FunnelName: c.catalog.FunnelName,
		EfAffID:    original.EfAffID,

		IdempotencyKey: uuid.NewString(),
	}

	resp, err := c.gateway.CreateOrder(ctx, input)
	if err != nil {
		c.alerts.Danger(err.Error())
		return err
	}
	if !resp.Success {
		// stay on the page; no retry, no rollback of the original order
		c.alerts.Danger(resp.Error)
		return errors.New(resp.Error)
	}

	c.advance(ctx)
	return nil
}

// DeclineOffer skips the current upsell without any mutation.
func (c *Controller) DeclineOffer(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stage != StageOrderPlaced && c.stage != StageUpsell {
		return errors.New("no offer pending")
	}

	c.advance(ctx)
	return nil
}

func (c *Controller) advance(ctx context.Context) {
	c.offerIdx++
	if c.offerIdx >= len(c.catalog.Offers) {
		c.finish(ctx)
		return
	}
	c.stage = StageUpsell
	c.current = c.catalog.Offers[c.offerIdx].Page
}

// finish closes the original order and lands on the confirmation page,
// which has no further order-mutation capability.
func (c *Controller) finish(ctx context.Context) {
	if cont, ok := LoadContinuation(c.storage); ok {
		resp, err := c.gateway.CloseOrder(ctx, dto.CloseOrderInput{ID: cont.OrderID})
		if err != nil {
			c.alerts.Danger(err.Error())
		} else if !resp.Success {
			c.alerts.Danger(resp.Error)
		}
	}

	c.stage = StageDone
	c.current = c.catalog.ThankYouPage
}
