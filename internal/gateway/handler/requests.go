package handler

import (
	dErrors "bursar/pkg/domain-errors"
)

// CollectFeeRequest is the HTTP request body for POST /payments/fee.
type CollectFeeRequest struct {
	Amount int64 `json:"amount"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CollectFeeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "amount must be greater than zero")
	}
	return nil
}
