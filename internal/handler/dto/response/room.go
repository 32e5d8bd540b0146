package response

import (
	"time"

	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	HourlyRateCents int64     `json:"hourlyRateCents"`
	Capacity        int32     `json:"capacity"`
	Equipment       string    `json:"equipment"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromRoomView(view *queries.RoomView) *RoomResponse {
	return &RoomResponse{
		ID:              view.ID,
		Name:            view.Name,
		HourlyRateCents: view.HourlyRateCents,
		Capacity:        view.Capacity,
		Equipment:       view.Equipment,
		CreatedAt:       view.CreatedAt,
		UpdatedAt:       view.UpdatedAt,
	}
}

func FromRoomViews(views []queries.RoomView) []*RoomResponse {
	out := make([]*RoomResponse, len(views))
	for i := range views {
		out[i] = FromRoomView(&views[i])
	}
	return out
}
