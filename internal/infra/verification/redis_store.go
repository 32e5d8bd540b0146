package verification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	dverification "studio-booking/internal/domain/verification"
	"studio-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCodeStore persists verification codes as hashes with a TTL equal
// to the verification window. Claim runs as a Lua script so concurrent
// confirm calls cannot share an attempt.
type RedisCodeStore struct {
	client *redis.Client
}

func NewRedisCodeStore(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{client: client}
}

func codeKey(bookingID uuid.UUID) string {
	return fmt.Sprintf("verify:%s", bookingID)
}

// claimScript returns the hash as stored and then burns one attempt. The
// read and the decrement happen in one script execution, so every caller
// sees a distinct attempts value.
var claimScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return false
end
local vals = redis.call("HMGET", KEYS[1], "email", "hash", "expires_at", "attempts", "verified")
if tonumber(vals[4]) > 0 then
	redis.call("HINCRBY", KEYS[1], "attempts", -1)
end
return vals
`)

func (s *RedisCodeStore) Save(ctx context.Context, code *dverification.Code, ttl time.Duration) error {
	key := codeKey(code.BookingID())
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		"email", code.Email(),
		"hash", string(code.Hash()),
		"expires_at", code.ExpiresAt().UTC().Format(time.RFC3339Nano),
		"attempts", code.Attempts(),
		"verified", strconv.FormatBool(code.IsVerified()),
	)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return infra.WrapRepoErr(infra.KindStoreFailure, "failed to store verification code", err)
	}
	return nil
}

func (s *RedisCodeStore) Claim(ctx context.Context, bookingID uuid.UUID) (*dverification.Code, error) {
	res, err := claimScript.Run(ctx, s.client, []string{codeKey(bookingID)}).Result()
	if errors.Is(err, redis.Nil) || res == nil {
		return nil, dverification.ErrCodeExpired
	}
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindStoreFailure, "failed to claim verification code", err)
	}

	vals, ok := res.([]interface{})
	if !ok || len(vals) != 5 {
		return nil, infra.WrapRepoErr(infra.KindStoreFailure, "unexpected claim script reply", nil)
	}

	email, _ := vals[0].(string)
	hash, _ := vals[1].(string)
	expiresRaw, _ := vals[2].(string)
	attemptsRaw, _ := vals[3].(string)
	verifiedRaw, _ := vals[4].(string)

	expiresAt, err := time.Parse(time.RFC3339Nano, expiresRaw)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindStoreFailure, "corrupt verification code entry", err)
	}
	attempts, err := strconv.Atoi(attemptsRaw)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindStoreFailure, "corrupt verification code entry", err)
	}
	verified := verifiedRaw == "true"

	return dverification.Reconstruct(bookingID, email, []byte(hash), expiresAt, attempts, verified), nil
}

func (s *RedisCodeStore) Consume(ctx context.Context, bookingID uuid.UUID) error {
	if err := s.client.Del(ctx, codeKey(bookingID)).Err(); err != nil {
		return infra.WrapRepoErr(infra.KindStoreFailure, "failed to consume verification code", err)
	}
	return nil
}
