package handler

import (
	"bursar/internal/settings"
	id "bursar/pkg/domain"
)

// SettingsResponse is the HTTP response for GET /admin/settings.
type SettingsResponse struct {
	FeeAmount    int64  `json:"fee_amount"`
	PayoutAmount int64  `json:"payout_amount"`
	OracleRef    string `json:"oracle_ref"`
}

// FromSettings converts domain settings to an HTTP response.
func FromSettings(s settings.Settings) *SettingsResponse {
	return &SettingsResponse{
		FeeAmount:    s.FeeAmount,
		PayoutAmount: s.PayoutAmount,
		OracleRef:    s.OracleRef,
	}
}

// PeriodResponse is the HTTP response for GET /admin/period.
type PeriodResponse struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// FromPeriod converts a domain period to an HTTP response.
func FromPeriod(p id.Period) *PeriodResponse {
	return &PeriodResponse{Month: p.Month, Year: p.Year}
}
