package response

import (
	"time"

	"studio-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type PublicBookingStartedResponse struct {
	BookingID   uuid.UUID `json:"bookingId"`
	ChargeCents int64     `json:"chargeCents"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func FromPublicBookingStarted(started *commands.PublicBookingStarted) *PublicBookingStartedResponse {
	return &PublicBookingStartedResponse{
		BookingID:   started.BookingID,
		ChargeCents: started.ChargeCents,
		ExpiresAt:   started.ExpiresAt,
	}
}
