package response

import (
	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type OccupantResponse struct {
	ID          uuid.UUID `json:"id"`
	ClientName  string    `json:"clientName"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Status      string    `json:"status"`
	ChargeCents int64     `json:"chargeCents"`
	Note        *string   `json:"note,omitempty"`
}

type SlotResponse struct {
	StartTime string            `json:"startTime"`
	EndTime   string            `json:"endTime"`
	Free      bool              `json:"free"`
	Occupant  *OccupantResponse `json:"occupant,omitempty"`
}

type FreeRangeResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func FromSlotViews(views []queries.SlotView) []SlotResponse {
	out := make([]SlotResponse, len(views))
	for i, v := range views {
		out[i] = SlotResponse{
			StartTime: v.StartTime,
			EndTime:   v.EndTime,
			Free:      v.Free,
		}
		if v.Occupant != nil {
			out[i].Occupant = &OccupantResponse{
				ID:          v.Occupant.ID,
				ClientName:  v.Occupant.ClientName,
				StartTime:   v.Occupant.StartTime,
				EndTime:     v.Occupant.EndTime,
				Status:      v.Occupant.Status,
				ChargeCents: v.Occupant.ChargeCents,
				Note:        v.Occupant.Note,
			}
		}
	}
	return out
}

func FromFreeRangeViews(views []queries.FreeRangeView) []FreeRangeResponse {
	out := make([]FreeRangeResponse, len(views))
	for i, v := range views {
		out[i] = FreeRangeResponse{StartTime: v.StartTime, EndTime: v.EndTime}
	}
	return out
}
