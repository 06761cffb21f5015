package checkout

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

type Section string

const (
	SectionContact  Section = "contactInfo"
	SectionShipping Section = "shippingInfo"
)

type ContactInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

type Product struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	IsRecurring bool            `json:"isRecurring"`
	Quantity    int             `json:"quantity,omitempty"`
}

// DraftOrder is the shopper's in-progress order. It never carries an id;
// ids exist only on server-created orders.
type DraftOrder struct {
	ContactInfo  ContactInfo     `json:"contactInfo"`
	ShippingInfo ShippingInfo    `json:"shippingInfo"`
	Products     []Product       `json:"products"`
	OrderTotal   decimal.Decimal `json:"orderTotal"`
}

// DraftStore stages the draft order across page navigations and keeps
// OrderTotal consistent with the product list. It never calls the network.
type DraftStore struct {
	mu      sync.Mutex
	storage Storage
	order   DraftOrder
}

func NewDraftStore(storage Storage) *DraftStore {
	s := &DraftStore{
		storage: storage,
		order:   DraftOrder{OrderTotal: decimal.Zero},
	}

	if raw, ok := storage.Get(StorageKeyDraftOrder); ok {
		var persisted DraftOrder
		if err := json.Unmarshal([]byte(raw), &persisted); err == nil {
			s.order = persisted
		}
	}

	return s
}

// UpdateField merges a single form field into the draft. No validation
// happens here; forms own validation.
func (s *DraftStore) UpdateField(section Section, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch section {
	case SectionContact:
		switch field {
		case "email":
			s.order.ContactInfo.Email = value
		case "firstName":
			s.order.ContactInfo.FirstName = value
		case "lastName":
			s.order.ContactInfo.LastName = value
		default:
			return fmt.Errorf("unknown contact field %q", field)
		}
	case SectionShipping:
		switch field {
		case "address":
			s.order.ShippingInfo.Address = value
		case "city":
			s.order.ShippingInfo.City = value
		case "state":
			s.order.ShippingInfo.State = value
		case "zip":
			s.order.ShippingInfo.Zip = value
		default:
			return fmt.Errorf("unknown shipping field %q", field)
		}
	default:
		return fmt.Errorf("unknown section %q", section)
	}

	s.persist()
	return nil
}

func (s *DraftStore) SetProducts(products []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order.Products = products
	s.order.OrderTotal = lineTotal(products)
	s.persist()
}

// Order returns a copy for consumption by forms and payment adapters.
func (s *DraftStore) Order() DraftOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.order
	order.Products = append([]Product(nil), s.order.Products...)
	return order
}

func (s *DraftStore) persist() {
	raw, err := json.Marshal(s.order)
	if err != nil {
		return
	}
	s.storage.Set(StorageKeyDraftOrder, string(raw))
}

func lineTotal(products []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		quantity := p.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(quantity))))
	}
	return total
}

// emptyFields lists, in form order, every blank field in the union of
// contact and shipping info.
func emptyFields(draft DraftOrder) []string {
	fields := []struct {
		name  string
		value string
	}{
		{"email", draft.ContactInfo.Email},
		{"firstName", draft.ContactInfo.FirstName},
		{"lastName", draft.ContactInfo.LastName},
		{"address", draft.ShippingInfo.Address},
		{"city", draft.ShippingInfo.City},
		{"state", draft.ShippingInfo.State},
		{"zip", draft.ShippingInfo.Zip},
	}

	var empty []string
	for _, f := range fields {
		if f.value == "" {
			empty = append(empty, f.name)
		}
	}
	return empty
}
