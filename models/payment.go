package models

// PaymentOrder is the gateway order returned to the client when a subject
// starts paying for an appointment. Amount is in minor currency units.
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// VerifyPaymentRequest carries the gateway's signed confirmation of a
// completed order.
type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}
