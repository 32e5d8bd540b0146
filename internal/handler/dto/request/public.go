package request

import (
	"strings"
	"time"

	"studio-booking/internal/domain/pricing"
	"studio-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type StartPublicBookingRequest struct {
	RoomID     uuid.UUID `json:"room_id" binding:"required"`
	ClientName string    `json:"client_name" binding:"required"`
	Email      string    `json:"email" binding:"required,email"`
	Category   string    `json:"category" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	StartTime  string    `json:"start_time" binding:"required"`
	EndTime    string    `json:"end_time" binding:"required"`
	Note       *string   `json:"note,omitempty"`
}

func (r StartPublicBookingRequest) ToParams() (commands.StartPublicBookingParams, error) {
	category, err := pricing.ParseCategory(r.Category)
	if err != nil {
		return commands.StartPublicBookingParams{}, err
	}
	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return commands.StartPublicBookingParams{}, err
	}
	return commands.StartPublicBookingParams{
		RoomID:     r.RoomID,
		ClientID:   uuid.New(),
		ClientName: strings.TrimSpace(r.ClientName),
		Email:      strings.TrimSpace(strings.ToLower(r.Email)),
		Category:   category,
		Date:       date,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Note:       r.Note,
	}, nil
}

type ConfirmPublicBookingRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}
