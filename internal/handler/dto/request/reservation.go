package request

import (
	"strings"
	"time"

	"studio-booking/internal/domain/pricing"
	"studio-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RoomID     uuid.UUID `json:"room_id" binding:"required"`
	ClientID   uuid.UUID `json:"client_id" binding:"required"`
	ClientName string    `json:"client_name" binding:"required"`
	Category   string    `json:"category" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	StartTime  string    `json:"start_time" binding:"required"`
	EndTime    string    `json:"end_time" binding:"required"`
	Note       *string   `json:"note,omitempty"`
}

func (r CreateReservationRequest) ToParams() (commands.CreateReservationParams, error) {
	category, err := pricing.ParseCategory(r.Category)
	if err != nil {
		return commands.CreateReservationParams{}, err
	}
	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return commands.CreateReservationParams{}, err
	}
	return commands.CreateReservationParams{
		RoomID:     r.RoomID,
		ClientID:   r.ClientID,
		ClientName: strings.TrimSpace(r.ClientName),
		Category:   category,
		Date:       date,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Note:       r.Note,
	}, nil
}

// EditReservationRequest carries a partial update; absent fields keep
// their current value.
type EditReservationRequest struct {
	RoomID    *uuid.UUID `json:"room_id,omitempty"`
	Category  *string    `json:"category,omitempty"`
	Date      *string    `json:"date,omitempty"`
	StartTime *string    `json:"start_time,omitempty"`
	EndTime   *string    `json:"end_time,omitempty"`
	Note      *string    `json:"note,omitempty"`
}

func (r EditReservationRequest) ToParams() (commands.EditReservationParams, error) {
	p := commands.EditReservationParams{
		RoomID:    r.RoomID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Note:      r.Note,
	}
	if r.Category != nil {
		category, err := pricing.ParseCategory(*r.Category)
		if err != nil {
			return commands.EditReservationParams{}, err
		}
		p.Category = &category
	}
	if r.Date != nil {
		date, err := time.Parse(time.DateOnly, *r.Date)
		if err != nil {
			return commands.EditReservationParams{}, err
		}
		p.Date = &date
	}
	return p, nil
}
