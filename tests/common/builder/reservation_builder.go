//go:build unit

package builder

import (
	"time"

	"studio-booking/internal/domain/pricing"
	domres "studio-booking/internal/domain/reservation"
	"studio-booking/internal/domain/schedule"
	reqdto "studio-booking/internal/handler/dto/request"
	"studio-booking/internal/usecase/commands"
	"studio-booking/internal/usecase/queries"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID          uuid.UUID
	RoomID      uuid.UUID
	RoomName    string
	ClientID    uuid.UUID
	ClientName  string
	Email       string
	Category    pricing.Category
	Date        time.Time
	StartTime   string
	EndTime     string
	Status      domres.Status
	ChargeCents int64
	Note        string
	CreatedAt   time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:          uuid.New(),
		RoomID:      uuid.New(),
		RoomName:    "Studio A",
		ClientID:    uuid.New(),
		ClientName:  "Tanaka Band",
		Email:       "tanaka@example.com",
		Category:    pricing.CategoryStandard,
		Date:        time.Date(2025, 8, 22, 0, 0, 0, 0, time.UTC),
		StartTime:   "19:00",
		EndTime:     "21:00",
		Status:      domres.StatusPending,
		ChargeCents: 1_700_000,
		Note:        "full drum kit",
		CreatedAt:   time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ReservationBuilder) BuildInterval() (schedule.Interval, error) {
	start, err := schedule.ParseTimeOfDay(b.StartTime)
	if err != nil {
		return schedule.Interval{}, err
	}
	end, err := schedule.ParseTimeOfDay(b.EndTime)
	if err != nil {
		return schedule.Interval{}, err
	}
	return schedule.NewInterval(b.Date, start, end)
}

func (b *ReservationBuilder) BuildDomain() (*domres.Reservation, error) {
	iv, err := b.BuildInterval()
	if err != nil {
		return nil, err
	}
	return domres.ReconstructReservation(
		b.ID, b.RoomID, b.ClientID, b.ClientName,
		b.Category, iv, b.Status,
		pricing.NewMoney(b.ChargeCents),
		domres.NewNote(b.Note),
		nil, nil,
		b.CreatedAt, b.CreatedAt,
	), nil
}

func (b *ReservationBuilder) BuildCreateParams() commands.CreateReservationParams {
	note := b.Note
	return commands.CreateReservationParams{
		RoomID:     b.RoomID,
		ClientID:   b.ClientID,
		ClientName: b.ClientName,
		Category:   b.Category,
		Date:       b.Date,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Note:       &note,
	}
}

func (b *ReservationBuilder) BuildStartParams() commands.StartPublicBookingParams {
	note := b.Note
	return commands.StartPublicBookingParams{
		RoomID:     b.RoomID,
		ClientID:   b.ClientID,
		ClientName: b.ClientName,
		Email:      b.Email,
		Category:   b.Category,
		Date:       b.Date,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Note:       &note,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	note := b.Note
	return reqdto.CreateReservationRequest{
		RoomID:     b.RoomID,
		ClientID:   b.ClientID,
		ClientName: b.ClientName,
		Category:   b.Category.String(),
		Date:       b.Date.Format(time.DateOnly),
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Note:       &note,
	}
}

func (b *ReservationBuilder) BuildAgendaRow() queries.AgendaRow {
	start, _ := schedule.ParseTimeOfDay(b.StartTime)
	end, _ := schedule.ParseTimeOfDay(b.EndTime)
	note := b.Note
	return queries.AgendaRow{
		ID:          b.ID,
		RoomID:      b.RoomID,
		RoomName:    b.RoomName,
		ClientID:    b.ClientID,
		ClientName:  b.ClientName,
		Category:    b.Category.String(),
		Date:        b.Date,
		StartMin:    start.MinuteOfDay(),
		EndMin:      end.MinuteOfDay(),
		Status:      b.Status.String(),
		ChargeCents: b.ChargeCents,
		Note:        &note,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
}

func (b *ReservationBuilder) BuildHold() (shared.Hold, error) {
	iv, err := b.BuildInterval()
	if err != nil {
		return shared.Hold{}, err
	}
	return shared.Hold{
		BookingID:   b.ID,
		RoomID:      b.RoomID,
		ClientID:    b.ClientID,
		ClientName:  b.ClientName,
		Email:       b.Email,
		Category:    b.Category,
		Interval:    iv,
		ChargeCents: b.ChargeCents,
		Note:        b.Note,
		CreatedAt:   b.CreatedAt,
	}, nil
}

func (b *ReservationBuilder) BuildView() queries.ReservationView {
	iv, _ := b.BuildInterval()
	note := b.Note
	return queries.ReservationView{
		ID:          b.ID,
		RoomID:      b.RoomID,
		RoomName:    b.RoomName,
		ClientID:    b.ClientID,
		ClientName:  b.ClientName,
		Category:    b.Category.String(),
		Date:        b.Date.Format(time.DateOnly),
		DisplayDate: iv.DisplayDate().Format(time.DateOnly),
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      b.Status.String(),
		ChargeCents: b.ChargeCents,
		Note:        &note,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
}
