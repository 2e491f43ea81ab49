package handler

import (
	"net/http"
	"time"

	"clinic-desk-backend/internal/usecase"
	"clinic-desk-backend/pkg/response"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase}
}

func (h *ReportHandler) DailyVisits(w http.ResponseWriter, r *http.Request) {
	var date time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
			return
		}
		date = parsed
	}

	report, err := h.reportUsecase.DailyVisits(r.Context(), date)
	if err != nil {
		response.InternalServerError(w, "Failed to build daily visits report")
		return
	}

	response.Success(w, http.StatusOK, "Daily visits report retrieved successfully", report)
}

func (h *ReportHandler) BillingSummary(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateParam(r.URL.Query().Get("from"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid from date, use YYYY-MM-DD", nil)
		return
	}
	to, err := parseDateParam(r.URL.Query().Get("to"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid to date, use YYYY-MM-DD", nil)
		return
	}

	// Default to today when the range is omitted.
	now := time.Now()
	if from.IsZero() {
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	if to.IsZero() {
		to = from.AddDate(0, 0, 1)
	}

	report, err := h.reportUsecase.BillingSummary(r.Context(), from, to)
	if err != nil {
		response.InternalServerError(w, "Failed to build billing summary")
		return
	}

	response.Success(w, http.StatusOK, "Billing summary retrieved successfully", report)
}

func (h *ReportHandler) QueueStats(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportUsecase.QueueStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to build queue stats")
		return
	}

	response.Success(w, http.StatusOK, "Queue stats retrieved successfully", report)
}

func (h *ReportHandler) PatientStats(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportUsecase.PatientStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to build patient stats")
		return
	}

	response.Success(w, http.StatusOK, "Patient stats retrieved successfully", report)
}

func parseDateParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}
