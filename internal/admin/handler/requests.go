package handler

import (
	"strings"

	dErrors "bursar/pkg/domain-errors"
)

// SetAmountRequest is the HTTP request body for the fee and payout setters.
type SetAmountRequest struct {
	Amount int64 `json:"amount"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *SetAmountRequest) Validate() error {
	if r.Amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "amount must be greater than zero")
	}
	return nil
}

// SetOracleRefRequest is the HTTP request body for PUT /admin/settings/oracle.
type SetOracleRefRequest struct {
	Reference string `json:"reference"`
}

// Validate validates the request.
func (r *SetOracleRefRequest) Validate() error {
	r.Reference = strings.TrimSpace(r.Reference)
	if r.Reference == "" {
		return dErrors.New(dErrors.CodeValidation, "reference is required")
	}
	return nil
}

// SetMonthRequest is the HTTP request body for PUT /admin/period/month.
type SetMonthRequest struct {
	Month int `json:"month"`
}

// Validate validates the request. Range checking stays in the period service
// so the rule lives in one place.
func (r *SetMonthRequest) Validate() error {
	if r.Month == 0 {
		return dErrors.New(dErrors.CodeValidation, "month is required")
	}
	return nil
}

// SetYearRequest is the HTTP request body for PUT /admin/period/year.
type SetYearRequest struct {
	Year int `json:"year"`
}

// Validate validates the request.
func (r *SetYearRequest) Validate() error {
	if r.Year == 0 {
		return dErrors.New(dErrors.CodeValidation, "year is required")
	}
	return nil
}
