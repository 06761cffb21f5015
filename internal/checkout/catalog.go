package checkout

import "github.com/shopspring/decimal"

// Offer is a post-purchase upsell page and the product it sells.
type Offer struct {
	Page    string
	Product Product
}

// Catalog is the read-only product collaborator: funnel name, main cart
// contents and the upsell sequence.
type Catalog struct {
	FunnelName   string
	Products     []Product
	Offers       []Offer
	ThankYouPage string
}

// DefaultCatalog mirrors the funnel's live product data.
func DefaultCatalog() *Catalog {
	return &Catalog{
		FunnelName: "silver-2ct-studs",
		Products: []Product{
			{
				Title:    "Silver 2CT Studs",
				Price:    decimal.NewFromFloat(49.99),
				Quantity: 1,
			},
		},
		Offers: []Offer{
			{
				Page: "/otos/Oto1",
				Product: Product{
					Title:    "1CT Gold Studs",
					Price:    decimal.NewFromFloat(37.00),
					Quantity: 1,
				},
			},
			{
				Page: "/otos/Oto2",
				Product: Product{
					Title:       "Jewelry Club Membership",
					Price:       decimal.NewFromFloat(24.95),
					IsRecurring: true,
					Quantity:    1,
				},
			},
		},
		ThankYouPage: "/thankyou",
	}
}
