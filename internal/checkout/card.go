package checkout

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/google/uuid"

	"github.com/popcrumbs-alex/silver2ctfunnel/internal/dto"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/model"
)

// ErrPaymentInFlight rejects a resubmission while a payment round-trip is
// still outstanding.
var ErrPaymentInFlight = errors.New("payment already in progress")

// FormatExpiry shapes the expiry input into the MM/YY display format as the
// shopper types. raw is the full current input value, prev the previous
// display value; keeping prev around is what stops the slash from being
// re-inserted while deleting.
func FormatExpiry(prev, raw string) string {
	var filtered []rune
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '/' {
			filtered = append(filtered, r)
		}
	}

	// auto-insert the separator once the second digit lands
	if len(filtered) == 2 && len(prev) < 2 {
		filtered = append(filtered, '/')
	}

	if len(filtered) < 6 {
		return string(filtered)
	}
	return prev
}

// FormatCVC caps the CVC input; once the cap is reached further input
// leaves the value unchanged.
func FormatCVC(prev, raw string) string {
	if len(raw) < 6 {
		return raw
	}
	return prev
}

// CardForm holds the card-specific input state.
type CardForm struct {
	CreditCardNumber string
	Expiry           string
	CVC              string
}

func (f *CardForm) InputCardNumber(value string) {
	f.CreditCardNumber = value
}

func (f *CardForm) InputExpiry(value string) {
	f.Expiry = FormatExpiry(f.Expiry, value)
}

func (f *CardForm) InputCVC(value string) {
	f.CVC = FormatCVC(f.CVC, value)
}

type CardAdapter struct {
	gateway OrderGateway
	alerts  *AlertSink
	storage Storage
	catalog *Catalog
	form    *CardForm
	loading atomic.Bool
}

func NewCardAdapter(gateway OrderGateway, alerts *AlertSink, storage Storage, catalog *Catalog, form *CardForm) *CardAdapter {
	return &CardAdapter{
		gateway: gateway,
		alerts:  alerts,
		storage: storage,
		catalog: catalog,
		form:    form,
	}
}

func (a *CardAdapter) OrderType() string {
	return model.OrderTypeCredit
}

func (a *CardAdapter) AttemptPayment(ctx context.Context, draft DraftOrder) (*PaymentResult, error) {
	if !a.loading.CompareAndSwap(false, true) {
		return nil, ErrPaymentInFlight
	}
	defer a.loading.Store(false)

	// Completeness check over contact and shipping fields. Each empty field
	// raises a form error so the surface can focus it, but the mutation
	// still proceeds; the server owns the blocking validation.
	for _, field := range emptyFields(draft) {
		a.alerts.FormError(field)
	}

	input := dto.CreateOrderInput{
		Email:     draft.ContactInfo.Email,
		FirstName: draft.ContactInfo.FirstName,
		LastName:  draft.ContactInfo.LastName,
		Address:   draft.ShippingInfo.Address,
		City:      draft.ShippingInfo.City,
		State:     draft.ShippingInfo.State,
		Zip:       draft.ShippingInfo.Zip,

		Products:   draftProductInputs(draft.Products),
		OrderTotal: draft.OrderTotal,
		OrderType:  model.OrderTypeCredit,

		CreditCardNumber: stripWhitespace(a.form.CreditCardNumber),
		Expiry:           strings.ReplaceAll(a.form.Expiry, "/", ""),
		Cvc:              a.form.CVC,

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

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
