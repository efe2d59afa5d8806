package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/arkalabs/payroll-engine-go/internal/domain/payroll"
	"github.com/arkalabs/payroll-engine-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// All conflicts and nothing created is still a non-error outcome,
	// distinct from a validation or transport failure.
	if len(result.Created) == 0 {
		response.SuccessWithMessage(w, "No payroll records generated", result)
		return
	}

	response.Created(w, "Payroll generated", result)
}

func (h *payrollHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("period_month"))
	if err != nil {
		response.BadRequest(w, "Invalid period_month", nil)
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("period_year"))
	if err != nil {
		response.BadRequest(w, "Invalid period_year", nil)
		return
	}

	result, err := h.payrollService.CalculateOnly(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req payroll.ApprovePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	result, err := h.payrollService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	filter := payroll.Filter{
		Page:      1,
		Limit:     20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if monthStr := r.URL.Query().Get("period_month"); monthStr != "" {
		if month, err := strconv.Atoi(monthStr); err == nil {
			filter.PeriodMonth = &month
		}
	}
	if yearStr := r.URL.Query().Get("period_year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			filter.PeriodYear = &year
		}
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if sortBy := r.URL.Query().Get("sort_by"); sortBy != "" {
		filter.SortBy = sortBy
	}
	if sortOrder := r.URL.Query().Get("sort_order"); sortOrder != "" {
		filter.SortOrder = sortOrder
	}

	result, err := h.payrollService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	monthStr := r.URL.Query().Get("period_month")
	yearStr := r.URL.Query().Get("period_year")

	if monthStr == "" || yearStr == "" {
		response.BadRequest(w, "period_month and period_year are required", nil)
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "Invalid period_month", nil)
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < payroll.MinPeriodYear {
		response.BadRequest(w, "Invalid period_year", nil)
		return
	}

	result, err := h.payrollService.GetSummary(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
