package domain

import "time"

type PaymentMethod string

const (
	PaymentOrangeMoney    PaymentMethod = "orange_money"
	PaymentMTNMomo        PaymentMethod = "mtn_momo"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentWhatsApp       PaymentMethod = "whatsapp"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentOrangeMoney, PaymentMTNMomo, PaymentCashOnDelivery, PaymentWhatsApp:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID    int64  `json:"product_id"`
	Quantity     int    `json:"quantity"`
	SelectedSize string `json:"selected_size,omitempty"`
}

type Customer struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
}

type Delivery struct {
	City    string `json:"city"`
	Quarter string `json:"quarter,omitempty"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

type Payment struct {
	Method PaymentMethod `json:"method"`
}

// Order is the payload posted to the backend order-creation endpoint.
type Order struct {
	Items    []OrderItem `json:"items"`
	Customer Customer    `json:"customer"`
	Delivery Delivery    `json:"delivery"`
	Payment  Payment     `json:"payment"`
}

// Confirmation is what the backend returns on successful creation.
type Confirmation struct {
	OrderNumber string    `json:"orderNumber"`
	Total       int64     `json:"total"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
