package response

import (
	"time"

	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID          uuid.UUID  `json:"id"`
	RoomID      uuid.UUID  `json:"roomId"`
	RoomName    string     `json:"roomName"`
	ClientID    uuid.UUID  `json:"clientId"`
	ClientName  string     `json:"clientName"`
	Category    string     `json:"category"`
	Date        string     `json:"date"`
	DisplayDate string     `json:"displayDate"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	Status      string     `json:"status"`
	ChargeCents int64      `json:"chargeCents"`
	Note        *string    `json:"note,omitempty"`
	CheckInAt   *time.Time `json:"checkInAt,omitempty"`
	CheckOutAt  *time.Time `json:"checkOutAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:          view.ID,
		RoomID:      view.RoomID,
		RoomName:    view.RoomName,
		ClientID:    view.ClientID,
		ClientName:  view.ClientName,
		Category:    view.Category,
		Date:        view.Date,
		DisplayDate: view.DisplayDate,
		StartTime:   view.StartTime,
		EndTime:     view.EndTime,
		Status:      view.Status,
		ChargeCents: view.ChargeCents,
		Note:        view.Note,
		CheckInAt:   view.CheckInAt,
		CheckOutAt:  view.CheckOutAt,
		CreatedAt:   view.CreatedAt,
		UpdatedAt:   view.UpdatedAt,
	}
}

func FromReservationViews(views []queries.ReservationView) []*ReservationResponse {
	out := make([]*ReservationResponse, len(views))
	for i := range views {
		out[i] = FromReservationView(&views[i])
	}
	return out
}
