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

// AdminHandler serves the admin-only configuration surface: clinic
// settings, doctor profiles, rooms and the procedure catalog.
type AdminHandler struct {
	settingUsecase usecase.SettingUsecase
	configUsecase  usecase.AdminConfigUsecase
	validator      *validator.CustomValidator
}

func NewAdminHandler(
	settingUsecase usecase.SettingUsecase,
	configUsecase usecase.AdminConfigUsecase,
	validator *validator.CustomValidator,
) *AdminHandler {
	return &AdminHandler{
		settingUsecase: settingUsecase,
		configUsecase:  configUsecase,
		validator:      validator,
	}
}

func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingUsecase.Get(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get settings")
		return
	}

	response.Success(w, http.StatusOK, "Settings retrieved successfully", dto.SettingsResponse{
		TokenResetTime:           settings.TokenResetTime,
		EmergencyProtocolEnabled: settings.EmergencyProtocolEnabled,
	})
}

func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	settings, err := h.settingUsecase.Update(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to update settings")
		return
	}

	response.Success(w, http.StatusOK, "Settings updated successfully", dto.SettingsResponse{
		TokenResetTime:           settings.TokenResetTime,
		EmergencyProtocolEnabled: settings.EmergencyProtocolEnabled,
	})
}

func (h *AdminHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	var req dto.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.configUsecase.UpdateDoctor(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to update doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

func (h *AdminHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	room, err := h.configUsecase.CreateRoom(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrCodeConflict:
			response.Conflict(w, "Room code is already in use")
		default:
			response.InternalServerError(w, "Failed to create room")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Room created successfully", room)
}

func (h *AdminHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.configUsecase.ListRooms(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list rooms")
		return
	}

	response.Success(w, http.StatusOK, "Rooms retrieved successfully", rooms)
}

func (h *AdminHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid room ID", nil)
		return
	}

	var req dto.UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	room, err := h.configUsecase.UpdateRoom(r.Context(), roomID, &req)
	if err != nil {
		switch err {
		case usecase.ErrRoomNotFound:
			response.NotFound(w, "Room not found")
		case usecase.ErrCodeConflict:
			response.Conflict(w, "Room code is already in use")
		default:
			response.InternalServerError(w, "Failed to update room")
		}
		return
	}

	response.Success(w, http.StatusOK, "Room updated successfully", room)
}

func (h *AdminHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid room ID", nil)
		return
	}

	if err := h.configUsecase.DeleteRoom(r.Context(), roomID); err != nil {
		switch err {
		case usecase.ErrRoomNotFound:
			response.NotFound(w, "Room not found")
		default:
			response.InternalServerError(w, "Failed to delete room")
		}
		return
	}

	response.Success(w, http.StatusOK, "Room deleted successfully", nil)
}

func (h *AdminHandler) CreateProcedure(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProcedureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	procedure, err := h.configUsecase.CreateProcedure(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrCodeConflict:
			response.Conflict(w, "Procedure code is already in use")
		default:
			response.InternalServerError(w, "Failed to create procedure")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Procedure created successfully", procedure)
}

func (h *AdminHandler) ListProcedures(w http.ResponseWriter, r *http.Request) {
	procedures, err := h.configUsecase.ListProcedures(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list procedures")
		return
	}

	response.Success(w, http.StatusOK, "Procedures retrieved successfully", procedures)
}

func (h *AdminHandler) UpdateProcedure(w http.ResponseWriter, r *http.Request) {
	procedureID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid procedure ID", nil)
		return
	}

	var req dto.UpdateProcedureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	procedure, err := h.configUsecase.UpdateProcedure(r.Context(), procedureID, &req)
	if err != nil {
		switch err {
		case usecase.ErrProcedureNotFound:
			response.NotFound(w, "Procedure not found")
		case usecase.ErrCodeConflict:
			response.Conflict(w, "Procedure code is already in use")
		default:
			response.InternalServerError(w, "Failed to update procedure")
		}
		return
	}

	response.Success(w, http.StatusOK, "Procedure updated successfully", procedure)
}

func (h *AdminHandler) DeleteProcedure(w http.ResponseWriter, r *http.Request) {
	procedureID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid procedure ID", nil)
		return
	}

	if err := h.configUsecase.DeleteProcedure(r.Context(), procedureID); err != nil {
		switch err {
		case usecase.ErrProcedureNotFound:
			response.NotFound(w, "Procedure not found")
		default:
			response.InternalServerError(w, "Failed to delete procedure")
		}
		return
	}

	response.Success(w, http.StatusOK, "Procedure deleted successfully", nil)
}
