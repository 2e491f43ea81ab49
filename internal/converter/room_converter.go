package converter

import (
	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/domain/entity"
)

// RoomToResponse converts a Room entity to RoomResponse DTO
func RoomToResponse(room *entity.Room) *dto.RoomResponse {
	if room == nil {
		return nil
	}

	return &dto.RoomResponse{
		ID:        room.ID,
		Code:      room.Code,
		Name:      room.Name,
		Floor:     room.Floor,
		Status:    string(room.Status),
		CreatedAt: room.CreatedAt,
	}
}

// RoomsToResponses converts a slice of Room entities to RoomResponse DTOs
func RoomsToResponses(rooms []entity.Room) []dto.RoomResponse {
	responses := make([]dto.RoomResponse, len(rooms))
	for i, room := range rooms {
		responses[i] = *RoomToResponse(&room)
	}
	return responses
}
