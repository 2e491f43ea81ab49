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

type ProcedureOrderHandler struct {
	orderUsecase usecase.ProcedureOrderUsecase
	validator    *validator.CustomValidator
}

func NewProcedureOrderHandler(orderUsecase usecase.ProcedureOrderUsecase, validator *validator.CustomValidator) *ProcedureOrderHandler {
	return &ProcedureOrderHandler{
		orderUsecase: orderUsecase,
		validator:    validator,
	}
}

func (h *ProcedureOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProcedureOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	order, err := h.orderUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrVisitNotFound:
			response.NotFound(w, "Visit not found")
		case usecase.ErrProcedureNotFound:
			response.NotFound(w, "Procedure not found")
		default:
			response.InternalServerError(w, "Failed to create procedure order")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Procedure order created successfully", order)
}

func (h *ProcedureOrderHandler) Start(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid procedure order ID", nil)
		return
	}

	order, err := h.orderUsecase.Start(r.Context(), orderID)
	if err != nil {
		switch err {
		case usecase.ErrProcedureOrderNotFound:
			response.NotFound(w, "Procedure order not found")
		case usecase.ErrProcedureOrderInvalidStatus:
			response.Conflict(w, "Procedure order is not requested")
		default:
			response.InternalServerError(w, "Failed to start procedure")
		}
		return
	}

	response.Success(w, http.StatusOK, "Procedure started successfully", order)
}

func (h *ProcedureOrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid procedure order ID", nil)
		return
	}

	order, err := h.orderUsecase.Complete(r.Context(), orderID)
	if err != nil {
		switch err {
		case usecase.ErrProcedureOrderNotFound:
			response.NotFound(w, "Procedure order not found")
		case usecase.ErrProcedureOrderInvalidStatus:
			response.Conflict(w, "Procedure order is not in progress")
		case usecase.ErrProcedureNotStarted:
			response.Conflict(w, "Procedure order has no start time")
		default:
			response.InternalServerError(w, "Failed to complete procedure")
		}
		return
	}

	response.Success(w, http.StatusOK, "Procedure completed successfully", order)
}

func (h *ProcedureOrderHandler) ListOngoing(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUsecase.ListOngoing(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list ongoing procedures")
		return
	}

	response.Success(w, http.StatusOK, "Ongoing procedures retrieved successfully", orders)
}

func (h *ProcedureOrderHandler) ListRequested(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUsecase.ListRequested(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list requested procedures")
		return
	}

	response.Success(w, http.StatusOK, "Requested procedures retrieved successfully", orders)
}
