package room

import (
	"errors"
	"strings"

	"studio-booking/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("room name cannot be empty")
	ErrInvalidCapacity = errors.New("room capacity must be positive")
)

// Room is a rehearsal room. Rooms are owned by an external room-management
// collaborator and are read-only to the booking core: no mutator is exposed.
type Room struct {
	id         uuid.UUID
	name       string
	hourlyRate pricing.Money
	capacity   int
	equipment  string
}

func NewRoom(id uuid.UUID, name string, hourlyRate pricing.Money, capacity int, equipment string) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Room{
		id:         id,
		name:       name,
		hourlyRate: hourlyRate,
		capacity:   capacity,
		equipment:  equipment,
	}, nil
}

func (r *Room) ID() uuid.UUID             { return r.id }
func (r *Room) Name() string              { return r.name }
func (r *Room) HourlyRate() pricing.Money { return r.hourlyRate }
func (r *Room) Capacity() int             { return r.capacity }
func (r *Room) Equipment() string         { return r.equipment }
