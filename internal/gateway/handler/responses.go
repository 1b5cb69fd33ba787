package handler

import (
	"bursar/internal/gateway"
)

// ReceiptResponse is the HTTP response for a settled payment.
type ReceiptResponse struct {
	Account string `json:"account"`
	Period  string `json:"period"`
	Kind    string `json:"kind"`
	Amount  int64  `json:"amount"`
}

// FromReceipt converts a domain receipt to an HTTP response.
func FromReceipt(receipt *gateway.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		Account: receipt.Account.String(),
		Period:  receipt.Period.Key(),
		Kind:    string(receipt.Kind),
		Amount:  receipt.Amount,
	}
}
