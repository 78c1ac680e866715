package model

// Wire shapes for the slice of the Stripe API this service touches. Every
// nested object is optional on the gateway side; consumers must treat empty
// fields as absent.

type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"` // paid, unpaid, no_payment_required
	PaymentIntent string            `json:"payment_intent"`
	AmountTotal   int64             `json:"amount_total"` // smallest currency unit
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

type PaymentIntent struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	LatestCharge  string     `json:"latest_charge"`
	PaymentMethod string     `json:"payment_method"`
	Charges       ChargeList `json:"charges"`
}

type ChargeList struct {
	Data []Charge `json:"data"`
}

type Charge struct {
	ID                   string               `json:"id"`
	Status               string               `json:"status"`
	PaymentMethodDetails PaymentMethodDetails `json:"payment_method_details"`
}

type PaymentMethodDetails struct {
	Type string `json:"type"`
	Card *Card  `json:"card"`
}

type PaymentMethod struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Card *Card  `json:"card"`
}

type Card struct {
	Brand string `json:"brand"`
	Last4 string `json:"last4"`
}
