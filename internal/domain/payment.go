package domain

type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "Success"
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

type PaymentMethod string

const (
	PaymentMethodRazorpay PaymentMethod = "Razorpay"
	PaymentMethodCard     PaymentMethod = "Card"
	PaymentMethodPayPal   PaymentMethod = "PayPal"
	PaymentMethodUPI      PaymentMethod = "UPI"
)

type Payment struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Method    PaymentMethod `json:"method"`
	Amount    float64       `json:"amount"`
	Status    PaymentStatus `json:"status"`
	Date      string        `json:"date"`
	Reference string        `json:"reference,omitempty"`
}

// Charge is a request to the payment collaborator.
type Charge struct {
	User   string        `json:"user"`
	Car    string        `json:"car"`
	Amount float64       `json:"amount"`
	Method PaymentMethod `json:"method"`
}

// Receipt is what the payment collaborator answers on success.
type Receipt struct {
	OrderID  string  `json:"orderId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}
