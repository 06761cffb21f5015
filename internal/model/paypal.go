package model

// Wire shapes for the PayPal Orders v2 API. Request and response share the
// amount type; capture responses additionally carry payer and shipping data
// the checkout flow falls back on.

type PaypalAmount struct {
	Currency  string           `json:"currency_code"`
	Value     string           `json:"value"`
	Breakdown *PaypalBreakdown `json:"breakdown,omitempty"`
}

type PaypalBreakdown struct {
	ItemTotal PaypalMoney `json:"item_total"`
}

type PaypalMoney struct {
	Currency string `json:"currency_code"`
	Value    string `json:"value"`
}

type PaypalItem struct {
	Name       string      `json:"name"`
	UnitAmount PaypalMoney `json:"unit_amount"`
	Quantity   string      `json:"quantity"`
}

type PaypalShippingName struct {
	FullName string `json:"full_name"`
}

type PaypalAddress struct {
	AddressLine1 string `json:"address_line_1"`
	AdminArea2   string `json:"admin_area_2"` // city
	AdminArea1   string `json:"admin_area_1"` // state
	PostalCode   string `json:"postal_code"`
	CountryCode  string `json:"country_code,omitempty"`
}

type PaypalShipping struct {
	Name    PaypalShippingName `json:"name"`
	Address PaypalAddress      `json:"address"`
}

type PaypalPurchaseUnit struct {
	Amount   PaypalAmount   `json:"amount"`
	Shipping PaypalShipping `json:"shipping"`
	Items    []PaypalItem   `json:"items"`
}

type PaypalPayerName struct {
	GivenName string `json:"given_name"`
	Surname   string `json:"surname"`
}

type PaypalPayer struct {
	PayerID string          `json:"payer_id"`
	Email   string          `json:"email_address"`
	Name    PaypalPayerName `json:"name"`
}

type PaypalLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type PaypalCaptureUnit struct {
	Shipping PaypalShipping `json:"shipping"`
}

// PaypalCapture is the capture response consumed by the checkout flow.
type PaypalCapture struct {
	ID            string              `json:"id"`
	Status        string              `json:"status"`
	Payer         PaypalPayer         `json:"payer"`
	PurchaseUnits []PaypalCaptureUnit `json:"purchase_units"`
}
