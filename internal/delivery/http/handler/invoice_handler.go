package handler

import (
	"encoding/json"
	"net/http"

	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/usecase"
	"clinic-desk-backend/pkg/response"
	"clinic-desk-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type InvoiceHandler struct {
	invoiceUsecase usecase.InvoiceUsecase
	validator      *validator.CustomValidator
}

func NewInvoiceHandler(invoiceUsecase usecase.InvoiceUsecase, validator *validator.CustomValidator) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceUsecase: invoiceUsecase,
		validator:      validator,
	}
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	invoice, created, err := h.invoiceUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrVisitNotFound:
			response.NotFound(w, "Visit not found")
		default:
			response.InternalServerError(w, "Failed to create invoice")
		}
		return
	}

	if created {
		response.Success(w, http.StatusCreated, "Invoice created successfully", invoice)
		return
	}
	response.Success(w, http.StatusOK, "Invoice already exists", invoice)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", nil)
		return
	}

	invoice, err := h.invoiceUsecase.GetByID(r.Context(), invoiceID)
	if err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found")
		default:
			response.InternalServerError(w, "Failed to get invoice")
		}
		return
	}

	response.Success(w, http.StatusOK, "Invoice retrieved successfully", invoice)
}

func (h *InvoiceHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", nil)
		return
	}

	var req dto.AddInvoiceItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	invoice, err := h.invoiceUsecase.AddItem(r.Context(), invoiceID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found")
		case usecase.ErrInvoiceVoid:
			response.Conflict(w, "Invoice has been voided")
		default:
			response.InternalServerError(w, "Failed to add invoice item")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Invoice item added successfully", invoice)
}

func (h *InvoiceHandler) Issue(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", nil)
		return
	}

	invoice, err := h.invoiceUsecase.Issue(r.Context(), invoiceID)
	if err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found")
		case usecase.ErrInvoiceVoid:
			response.Conflict(w, "Invoice has been voided")
		default:
			response.InternalServerError(w, "Failed to issue invoice")
		}
		return
	}

	response.Success(w, http.StatusOK, "Invoice issued successfully", invoice)
}

func (h *InvoiceHandler) Void(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", nil)
		return
	}

	invoice, err := h.invoiceUsecase.Void(r.Context(), invoiceID)
	if err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found")
		default:
			response.InternalServerError(w, "Failed to void invoice")
		}
		return
	}

	response.Success(w, http.StatusOK, "Invoice voided successfully", invoice)
}

func (h *InvoiceHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", nil)
		return
	}

	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	invoice, err := h.invoiceUsecase.RecordPayment(r.Context(), invoiceID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found")
		case usecase.ErrInvoiceVoid:
			response.Conflict(w, "Invoice has been voided")
		case usecase.ErrInvalidAmount:
			response.Error(w, http.StatusBadRequest, "Payment amount must be positive", nil)
		default:
			response.InternalServerError(w, "Failed to record payment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Payment recorded successfully", invoice)
}

func (h *InvoiceHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", nil)
		return
	}

	receipt, err := h.invoiceUsecase.GetOrCreateReceipt(r.Context(), invoiceID)
	if err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found")
		default:
			response.InternalServerError(w, "Failed to get receipt")
		}
		return
	}

	response.Success(w, http.StatusOK, "Receipt retrieved successfully", receipt)
}
