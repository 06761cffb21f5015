package checkout

import (
	"context"

	"github.com/popcrumbs-alex/silver2ctfunnel/internal/dto"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/service"
)

// OrderGateway is the client-facing contract of the four remote order
// operations. Satisfied by the HTTP gateway client and, in-process, by
// NewServiceGateway over the order service.
type OrderGateway interface {
	FindOrder(ctx context.Context, input dto.FindOrderInput) (*dto.OrderResponse, error)
	CreateOrder(ctx context.Context, input dto.CreateOrderInput) (*dto.OrderResponse, error)
	UpdateOrder(ctx context.Context, input dto.UpdateOrderInput) (*dto.OrderResponse, error)
	CloseOrder(ctx context.Context, input dto.CloseOrderInput) (*dto.OrderResponse, error)
}

type serviceGateway struct {
	svc service.OrderService
}

// NewServiceGateway adapts the order service to the OrderGateway contract
// for single-binary deployments that skip the HTTP hop.
func NewServiceGateway(svc service.OrderService) OrderGateway {
	return &serviceGateway{svc: svc}
}

func (g *serviceGateway) FindOrder(ctx context.Context, input dto.FindOrderInput) (*dto.OrderResponse, error) {
	return g.svc.FindOrder(ctx, &input)
}

func (g *serviceGateway) CreateOrder(ctx context.Context, input dto.CreateOrderInput) (*dto.OrderResponse, error) {
	return g.svc.CreateOrder(ctx, &input)
}

func (g *serviceGateway) UpdateOrder(ctx context.Context, input dto.UpdateOrderInput) (*dto.OrderResponse, error) {
	return g.svc.UpdateOrder(ctx, &input)
}

func (g *serviceGateway) CloseOrder(ctx context.Context, input dto.CloseOrderInput) (*dto.OrderResponse, error) {
	return g.svc.CloseOrder(ctx, &input)
}

// PaymentResult is the success half of a payment attempt; failures travel
// as errors.
type PaymentResult struct {
	OrderID string
}

// PaymentAdapter turns draft-order data plus method-specific input into a
// finalized create-order call.
type PaymentAdapter interface {
	// OrderType tags the orders this adapter creates: credit or paypal.
	OrderType() string
	AttemptPayment(ctx context.Context, draft DraftOrder) (*PaymentResult, error)
}

// AffiliateSentinel marks orders that arrived without an affiliate tag.
const AffiliateSentinel = "non-ef-order"

func affiliateID(storage Storage) string {
	if id, ok := storage.Get(StorageKeyAffiliate); ok && id != "" {
		return id
	}
	return AffiliateSentinel
}

func draftProductInputs(products []Product) []dto.ProductInput {
	inputs := make([]dto.ProductInput, 0, len(products))
	for _, p := range products {
		inputs = append(inputs, dto.ProductInput{
			Title:       p.Title,
			Price:       p.Price,
			IsRecurring: p.IsRecurring,
			Quantity:    p.Quantity,
		})
	}
	return inputs
}
