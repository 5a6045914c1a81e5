package handler

import "github.com/vendops/inventory-admin/internal/core/domain"

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// machineForm is shared by the create and edit forms.
type machineForm struct {
	Code     string `form:"code"     validate:"required,max=64"`
	Model    string `form:"model"    validate:"required,max=128"`
	Location string `form:"location" validate:"required,max=128"`
}

type generateReportForm struct {
	Type     string `form:"type"`
	Date     string `form:"date"`
	AllDates string `form:"allDates"`
}

// toggleResponse is returned by POST /machine/{id}/toggle.
type toggleResponse struct {
	Success    bool `json:"success"`
	IsSelected bool `json:"isSelected"`
}

// saveReportResponse is returned by POST /save-report.
type saveReportResponse struct {
	Success bool           `json:"success"`
	Record  *domain.Record `json:"record"`
}

// successResponse is the envelope of JSON actions without a payload.
type successResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
