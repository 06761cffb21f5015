package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/popcrumbs-alex/silver2ctfunnel/internal/dto"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/model"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/repository"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderClosed   = errors.New("order is closed")
)

// CardDetails carries the raw card fields the credit path submits.
// They are charged and discarded, never persisted.
type CardDetails struct {
	Number    string
	Expiry    string // MMYY, slashes already stripped by the client
	CVC       string
	FirstName string
	LastName  string
	Email     string
}

// CardCharger settles card payments. Charge vaults the card while settling
// so later upsell orders can reuse the payment method via ChargeToken
// without re-collecting card details. Both return the processor
// transaction id; Charge additionally returns the vault token.
type CardCharger interface {
	Charge(ctx context.Context, card CardDetails, amount decimal.Decimal) (transactionID, paymentToken string, err error)
	ChargeToken(ctx context.Context, paymentToken string, amount decimal.Decimal) (string, error)
}

type OrderService interface {
	FindOrder(ctx context.Context, input *dto.FindOrderInput) (*dto.OrderResponse, error)
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*dto.OrderResponse, error)
	UpdateOrder(ctx context.Context, input *dto.UpdateOrderInput) (*dto.OrderResponse, error)
	CloseOrder(ctx context.Context, input *dto.CloseOrderInput) (*dto.OrderResponse, error)
}

type orderServiceImpl struct {
	orderRepo   repository.OrderRepository
	cardCharger CardCharger
	logger      *slog.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cardCharger CardCharger,
	logger *slog.Logger,
) OrderService {
	return &orderServiceImpl{
		orderRepo:   orderRepo,
		cardCharger: cardCharger,
		logger:      logger,
	}
}

func failure(message string) *dto.OrderResponse {
	return &dto.OrderResponse{Success: false, Error: message}
}

func success(order *model.Order) *dto.OrderResponse {
	return &dto.OrderResponse{Success: true, Order: order}
}

func (s *orderServiceImpl) FindOrder(ctx context.Context, input *dto.FindOrderInput) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, input.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return failure(ErrOrderNotFound.Error()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}

	return success(order), nil
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*dto.OrderResponse, error) {
	if msg := validateCreateInput(input); msg != "" {
		return failure(msg), nil
	}

	// Duplicate submissions (double-click, replayed provider callback) carry
	// the same client-generated key and resolve to the already-created order.
	if input.IdempotencyKey != "" {
		existing, err := s.orderRepo.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("idempotency lookup: %w", err)
		}
		if existing != nil {
			s.logger.Info("duplicate create resolved by idempotency key",
				"order_id", existing.ID)
			return success(existing), nil
		}
	}

	var paymentToken string
	if input.OrderType == model.OrderTypeCredit {
		switch {
		case input.CreditCardNumber != "":
			card := CardDetails{
				Number:    input.CreditCardNumber,
				Expiry:    input.Expiry,
				CVC:       input.Cvc,
				FirstName: input.FirstName,
				LastName:  input.LastName,
				Email:     input.Email,
			}
			transactionID, token, err := s.cardCharger.Charge(ctx, card, input.OrderTotal)
			if err != nil {
				s.logger.Warn("card charge failed", "error", err)
				return failure(err.Error()), nil
			}
			paymentToken = token
			s.logger.Info("card charged", "transaction_id", transactionID)
		case input.SourceOrderID != "":
			// Upsell create: no card fields travel with it, the charge runs
			// against the token vaulted with the source order.
			source, err := s.orderRepo.FindByID(ctx, input.SourceOrderID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return failure("source order not found"), nil
			}
			if err != nil {
				return nil, fmt.Errorf("load source order: %w", err)
			}
			if source.PaymentToken == "" {
				return failure("source order has no vaulted payment method"), nil
			}
			transactionID, err := s.cardCharger.ChargeToken(ctx, source.PaymentToken, input.OrderTotal)
			if err != nil {
				s.logger.Warn("vaulted card charge failed",
					"error", err,
					"source_order_id", source.ID)
				return failure(err.Error()), nil
			}
			paymentToken = source.PaymentToken
			s.logger.Info("vaulted card charged",
				"transaction_id", transactionID,
				"source_order_id", source.ID)
		default:
			return failure("card details or a source order are required for credit orders"), nil
		}
	}

	order := &model.Order{
		ID:                  uuid.NewString(),
		Email:               input.Email,
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Address:             input.Address,
		City:                input.City,
		State:               input.State,
		Zip:                 input.Zip,
		Products:            buildProducts(input.Products),
		OrderTotal:          input.OrderTotal,
		OrderType:           input.OrderType,
		Status:              model.OrderStatusCreated,
		PaypalTransactionID: input.PaypalTransactionID,
		PaypalPayerID:       input.PaypalPayerID,
		FunnelName:          input.FunnelName,
		EfAffID:             input.EfAffID,
		IdempotencyKey:      input.IdempotencyKey,
		PaymentToken:        paymentToken,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	s.logger.Info("order created",
		"order_id", order.ID,
		"order_type", order.OrderType,
		"order_total", order.OrderTotal.String(),
		"funnel", order.FunnelName)

	return success(order), nil
}

func (s *orderServiceImpl) UpdateOrder(ctx context.Context, input *dto.UpdateOrderInput) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, input.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return failure(ErrOrderNotFound.Error()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load order for update: %w", err)
	}

	if order.Closed() {
		return failure(ErrOrderClosed.Error()), nil
	}

	mergeUpdate(order, input)

	if order.OrderTotal.IsNegative() {
		return failure("orderTotal must not be negative"), nil
	}

	if input.Products != nil {
		if err := s.orderRepo.ReplaceProducts(ctx, order.ID, buildProducts(input.Products)); err != nil {
			return nil, fmt.Errorf("replace order products: %w", err)
		}
	}

	order.Status = model.OrderStatusUpdated
	order.Products = nil // already persisted, Save must not re-insert rows
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	updated, err := s.orderRepo.FindByID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("reload updated order: %w", err)
	}

	return success(updated), nil
}

func (s *orderServiceImpl) CloseOrder(ctx context.Context, input *dto.CloseOrderInput) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, input.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return failure(ErrOrderNotFound.Error()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load order for close: %w", err)
	}

	if order.Closed() {
		return failure(ErrOrderClosed.Error()), nil
	}

	order.Status = model.OrderStatusClosed
	order.Products = nil
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("close order: %w", err)
	}

	closed, err := s.orderRepo.FindByID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("reload closed order: %w", err)
	}

	s.logger.Info("order closed", "order_id", order.ID)

	return success(closed), nil
}

func validateCreateInput(input *dto.CreateOrderInput) string {
	required := []struct {
		name  string
		value string
	}{
		{"email", input.Email},
		{"firstName", input.FirstName},
		{"lastName", input.LastName},
		{"address", input.Address},
		{"city", input.City},
		{"state", input.State},
		{"zip", input.Zip},
	}
	for _, field := range required {
		if field.value == "" {
			return field.name + " is required"
		}
	}

	if input.OrderType != model.OrderTypeCredit && input.OrderType != model.OrderTypePaypal {
		return "orderType must be credit or paypal"
	}

	if input.OrderTotal.IsNegative() {
		return "orderTotal must not be negative"
	}

	lineTotal := decimal.Zero
	for _, p := range input.Products {
		if p.Price.IsNegative() {
			return "product price must not be negative"
		}
		quantity := p.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		lineTotal = lineTotal.Add(p.Price.Mul(decimal.NewFromInt(int64(quantity))))
	}
	if !lineTotal.Equal(input.OrderTotal) {
		return "orderTotal does not match line items"
	}

	return ""
}

func buildProducts(inputs []dto.ProductInput) []model.OrderProduct {
	products := make([]model.OrderProduct, 0, len(inputs))
	for _, p := range inputs {
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
	return products
}

func mergeUpdate(order *model.Order, input *dto.UpdateOrderInput) {
	if input.Email != nil {
		order.Email = *input.Email
	}
	if input.FirstName != nil {
		order.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		order.LastName = *input.LastName
	}
	if input.Address != nil {
		order.Address = *input.Address
	}
	if input.City != nil {
		order.City = *input.City
	}
	if input.State != nil {
		order.State = *input.State
	}
	if input.Zip != nil {
		order.Zip = *input.Zip
	}
	if input.OrderTotal != nil {
		order.OrderTotal = *input.OrderTotal
	}
}
