package checkout

import (
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/client"
)

// Pipeline is the composition root for one funnel session: persisted
// client state, the staged draft order, the alert sink, both payment
// adapters and the navigation controller, all sharing the same storage.
type Pipeline struct {
	Storage    Storage
	Draft      *DraftStore
	Alerts     *AlertSink
	CardForm   *CardForm
	Card       *CardAdapter
	Paypal     *PayPalAdapter
	Controller *Controller
}

// NewPipeline wires a session over the given gateway and PayPal provider.
// The cart starts out holding the catalog's main products.
func NewPipeline(gateway OrderGateway, provider client.PaypalClient, storage Storage, catalog *Catalog, planID string) *Pipeline {
	alerts := NewAlertSink(16)
	form := &CardForm{}

	draft := NewDraftStore(storage)
	if len(draft.Order().Products) == 0 {
		draft.SetProducts(catalog.Products)
	}

	return &Pipeline{
		Storage:    storage,
		Draft:      draft,
		Alerts:     alerts,
		CardForm:   form,
		Card:       NewCardAdapter(gateway, alerts, storage, catalog, form),
		Paypal:     NewPayPalAdapter(provider, gateway, alerts, storage, catalog, planID),
		Controller: NewController(gateway, alerts, storage, catalog),
	}
}
