package hold

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"studio-booking/internal/domain/pricing"
	"studio-booking/internal/domain/schedule"
	"studio-booking/internal/infra"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisHoldStore keeps soft holds in Redis under two keys: a room-scoped
// key SCANned by the availability check and a booking-scoped pointer for
// direct lookup. Both carry the same TTL, so an abandoned flow vanishes
// on its own.
type RedisHoldStore struct {
	client *redis.Client
}

func NewRedisHoldStore(client *redis.Client) *RedisHoldStore {
	return &RedisHoldStore{client: client}
}

// holdDoc is the wire form of a hold; the interval is flattened to its
// nominal date and minute offsets.
type holdDoc struct {
	BookingID   uuid.UUID `json:"booking_id"`
	RoomID      uuid.UUID `json:"room_id"`
	ClientID    uuid.UUID `json:"client_id"`
	ClientName  string    `json:"client_name"`
	Email       string    `json:"email"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	StartMin    int       `json:"start_min"`
	EndMin      int       `json:"end_min"`
	ChargeCents int64     `json:"charge_cents"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}

func roomKey(roomID uuid.UUID, date string, bookingID uuid.UUID) string {
	return fmt.Sprintf("hold:room:%s:%s:%s", roomID, date, bookingID)
}

func bookingKey(bookingID uuid.UUID) string {
	return fmt.Sprintf("hold:booking:%s", bookingID)
}

func (s *RedisHoldStore) Put(ctx context.Context, h shared.Hold, ttl time.Duration) error {
	doc := toDoc(h)
	raw, err := json.Marshal(doc)
	if err != nil {
		return infra.WrapRepoErr(infra.KindStoreFailure, "failed to encode hold", err)
	}

	rk := roomKey(h.RoomID, doc.Date, h.BookingID)
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, rk, raw, ttl)
	pipe.Set(ctx, bookingKey(h.BookingID), rk, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return infra.WrapRepoErr(infra.KindStoreFailure, "failed to store hold", err)
	}
	return nil
}

func (s *RedisHoldStore) Get(ctx context.Context, bookingID uuid.UUID) (*shared.Hold, error) {
	rk, err := s.client.Get(ctx, bookingKey(bookingID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindStoreFailure, "failed to look up hold", err)
	}

	raw, err := s.client.Get(ctx, rk).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindStoreFailure, "failed to fetch hold", err)
	}

	h, err := fromRaw(raw)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindStoreFailure, "failed to decode hold", err)
	}
	return h, nil
}

func (s *RedisHoldStore) ActiveForRoom(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]shared.Hold, error) {
	var out []shared.Hold
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		pattern := fmt.Sprintf("hold:room:%s:%s:*", roomID, d.Format(time.DateOnly))
		iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			raw, err := s.client.Get(ctx, iter.Val()).Bytes()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				return nil, infra.WrapRepoErr(infra.KindStoreFailure, "failed to fetch hold", err)
			}
			h, err := fromRaw(raw)
			if err != nil {
				return nil, infra.WrapRepoErr(infra.KindStoreFailure, "failed to decode hold", err)
			}
			out = append(out, *h)
		}
		if err := iter.Err(); err != nil {
			return nil, infra.WrapRepoErr(infra.KindStoreFailure, "failed to scan holds", err)
		}
	}
	return out, nil
}

func (s *RedisHoldStore) Release(ctx context.Context, bookingID uuid.UUID) error {
	rk, err := s.client.Get(ctx, bookingKey(bookingID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return infra.WrapRepoErr(infra.KindStoreFailure, "failed to look up hold", err)
	}
	if err := s.client.Del(ctx, rk, bookingKey(bookingID)).Err(); err != nil {
		return infra.WrapRepoErr(infra.KindStoreFailure, "failed to release hold", err)
	}
	return nil
}

func toDoc(h shared.Hold) holdDoc {
	return holdDoc{
		BookingID:   h.BookingID,
		RoomID:      h.RoomID,
		ClientID:    h.ClientID,
		ClientName:  h.ClientName,
		Email:       h.Email,
		Category:    h.Category.String(),
		Date:        h.Interval.Date().Format(time.DateOnly),
		StartMin:    h.Interval.Start().MinuteOfDay(),
		EndMin:      h.Interval.End().MinuteOfDay(),
		ChargeCents: h.ChargeCents,
		Note:        h.Note,
		CreatedAt:   h.CreatedAt,
	}
}

func fromRaw(raw []byte) (*shared.Hold, error) {
	var doc holdDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	date, err := time.Parse(time.DateOnly, doc.Date)
	if err != nil {
		return nil, err
	}
	start, err := schedule.NewTimeOfDay(doc.StartMin/60, doc.StartMin%60)
	if err != nil {
		return nil, err
	}
	end, err := schedule.NewTimeOfDay(doc.EndMin/60, doc.EndMin%60)
	if err != nil {
		return nil, err
	}
	iv, err := schedule.NewInterval(date, start, end)
	if err != nil {
		return nil, err
	}
	category, err := pricing.ParseCategory(doc.Category)
	if err != nil {
		return nil, err
	}

	return &shared.Hold{
		BookingID:   doc.BookingID,
		RoomID:      doc.RoomID,
		ClientID:    doc.ClientID,
		ClientName:  doc.ClientName,
		Email:       doc.Email,
		Category:    category,
		Interval:    iv,
		ChargeCents: doc.ChargeCents,
		Note:        doc.Note,
		CreatedAt:   doc.CreatedAt,
	}, nil
}
