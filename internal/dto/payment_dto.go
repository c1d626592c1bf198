package dto

import "time"

type CheckoutRequest struct {
	WhatsappNumber string `json:"whatsapp_number" validate:"required"`
	PlanType       string `json:"plan_type" validate:"required,oneof=credit_pack monthly_subscription"`
}

type CheckoutResponse struct {
	OrderId     string `json:"order_id"`
	SnapToken   string `json:"snap_token"`
	RedirectUrl string `json:"redirect_url"`
}

// MidtransNotification is the HTTP notification body Midtrans posts after a
// transaction changes state. SignatureKey is SHA512(order_id + status_code +
// gross_amount + server_key) and must be verified before trusting the rest.
type MidtransNotification struct {
	TransactionStatus string `json:"transaction_status"`
	TransactionId     string `json:"transaction_id"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
	OrderId           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	FraudStatus       string `json:"fraud_status"`
}

type PaymentOrderResponse struct {
	OrderId        string    `json:"order_id"`
	WhatsappNumber string    `json:"whatsapp_number"`
	PlanType       string    `json:"plan_type"`
	Amount         int64     `json:"amount"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
