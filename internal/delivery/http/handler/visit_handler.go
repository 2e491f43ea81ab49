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

type VisitHandler struct {
	visitUsecase usecase.VisitUsecase
	orderUsecase usecase.ProcedureOrderUsecase
	validator    *validator.CustomValidator
}

func NewVisitHandler(
	visitUsecase usecase.VisitUsecase,
	orderUsecase usecase.ProcedureOrderUsecase,
	validator *validator.CustomValidator,
) *VisitHandler {
	return &VisitHandler{
		visitUsecase: visitUsecase,
		orderUsecase: orderUsecase,
		validator:    validator,
	}
}

func (h *VisitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	visit, err := h.visitUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to create visit")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Visit created successfully", visit)
}

func (h *VisitHandler) Today(w http.ResponseWriter, r *http.Request) {
	visits, err := h.visitUsecase.TodayVisits(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get today's visits")
		return
	}

	response.Success(w, http.StatusOK, "Today's visits retrieved successfully", visits)
}

func (h *VisitHandler) Get(w http.ResponseWriter, r *http.Request) {
	visitID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid visit ID", nil)
		return
	}

	visit, err := h.visitUsecase.GetByID(r.Context(), visitID)
	if err != nil {
		switch err {
		case usecase.ErrVisitNotFound:
			response.NotFound(w, "Visit not found")
		default:
			response.InternalServerError(w, "Failed to get visit")
		}
		return
	}

	response.Success(w, http.StatusOK, "Visit retrieved successfully", visit)
}

func (h *VisitHandler) Call(w http.ResponseWriter, r *http.Request) {
	visitID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid visit ID", nil)
		return
	}

	visit, err := h.visitUsecase.Call(r.Context(), visitID)
	if err != nil {
		switch err {
		case usecase.ErrVisitNotFound:
			response.NotFound(w, "Visit not found")
		case usecase.ErrVisitInvalidStatus:
			response.Conflict(w, "Visit is not waiting")
		default:
			response.InternalServerError(w, "Failed to call visit")
		}
		return
	}

	response.Success(w, http.StatusOK, "Visit called successfully", visit)
}

func (h *VisitHandler) Complete(w http.ResponseWriter, r *http.Request) {
	visitID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid visit ID", nil)
		return
	}

	visit, err := h.visitUsecase.Complete(r.Context(), visitID)
	if err != nil {
		switch err {
		case usecase.ErrVisitNotFound:
			response.NotFound(w, "Visit not found")
		default:
			response.InternalServerError(w, "Failed to complete visit")
		}
		return
	}

	response.Success(w, http.StatusOK, "Visit completed successfully", visit)
}

func (h *VisitHandler) ProcedureOrders(w http.ResponseWriter, r *http.Request) {
	visitID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid visit ID", nil)
		return
	}

	orders, err := h.orderUsecase.ListForVisit(r.Context(), visitID)
	if err != nil {
		switch err {
		case usecase.ErrVisitNotFound:
			response.NotFound(w, "Visit not found")
		default:
			response.InternalServerError(w, "Failed to list procedure orders")
		}
		return
	}

	response.Success(w, http.StatusOK, "Procedure orders retrieved successfully", orders)
}
