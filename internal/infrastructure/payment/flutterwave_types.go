package payment

import "encoding/json"

// flutterwavePaymentRequest is the body of POST /v3/payments
type flutterwavePaymentRequest struct {
	TxRef          string                    `json:"tx_ref"`
	Amount         string                    `json:"amount"`
	Currency       string                    `json:"currency"`
	RedirectURL    string                    `json:"redirect_url"`
	Customer       flutterwaveCustomer       `json:"customer"`
	Customizations flutterwaveCustomizations `json:"customizations"`
	Meta           map[string]any            `json:"meta,omitempty"`
}

type flutterwaveCustomer struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phonenumber"`
}

type flutterwaveCustomizations struct {
	Title string `json:"title"`
}

// flutterwaveEnvelope wraps every API response
type flutterwaveEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type flutterwaveLinkData struct {
	Link string `json:"link"`
}

type flutterwaveTransactionData struct {
	ID       json.Number `json:"id"`
	TxRef    string      `json:"tx_ref"`
	Status   string      `json:"status"`
	Amount   json.Number `json:"amount"`
	Currency string      `json:"currency"`
}
