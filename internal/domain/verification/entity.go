package verification

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrCodeExpired       = errors.New("verification code expired")
	ErrCodeMismatch      = errors.New("verification code does not match")
	ErrAttemptsExhausted = errors.New("verification attempts exhausted")
	ErrAlreadyVerified   = errors.New("booking already verified")
)

const (
	codeDigits      = 6
	DefaultAttempts = 3
)

// Code is the one-time check gating a public reservation. The clear code
// exists only in the issuance return value and the outbound notification;
// at rest only the bcrypt hash is kept.
type Code struct {
	bookingID uuid.UUID
	email     string
	hash      []byte
	expiresAt time.Time
	attempts  int
	verified  bool
}

// Issue generates a six-digit numeric code for a provisional booking and
// returns the clear code alongside the entity holding its hash.
func Issue(bookingID uuid.UUID, email string, now time.Time, ttl time.Duration, attempts int) (string, *Code, error) {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	clear, err := randomDigits(codeDigits)
	if err != nil {
		return "", nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(clear), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}
	return clear, &Code{
		bookingID: bookingID,
		email:     email,
		hash:      hash,
		expiresAt: now.Add(ttl),
		attempts:  attempts,
	}, nil
}

func Reconstruct(bookingID uuid.UUID, email string, hash []byte, expiresAt time.Time, attempts int, verified bool) *Code {
	return &Code{
		bookingID: bookingID,
		email:     email,
		hash:      hash,
		expiresAt: expiresAt,
		attempts:  attempts,
		verified:  verified,
	}
}

// Verify runs one attempt. Precedence: already verified, then expiry,
// then attempt exhaustion (a code with zero attempts left fails even when
// the candidate is correct), then the hash comparison. A mismatch
// consumes an attempt.
func (c *Code) Verify(now time.Time, candidate string) error {
	if c.verified {
		return ErrAlreadyVerified
	}
	if now.After(c.expiresAt) {
		return ErrCodeExpired
	}
	if c.attempts <= 0 {
		return ErrAttemptsExhausted
	}
	if bcrypt.CompareHashAndPassword(c.hash, []byte(candidate)) != nil {
		c.attempts--
		return ErrCodeMismatch
	}
	c.verified = true
	return nil
}

func (c *Code) BookingID() uuid.UUID { return c.bookingID }
func (c *Code) Email() string        { return c.email }
func (c *Code) Hash() []byte         { return c.hash }
func (c *Code) ExpiresAt() time.Time { return c.expiresAt }
func (c *Code) Attempts() int        { return c.attempts }
func (c *Code) IsVerified() bool     { return c.verified }

func randomDigits(n int) (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < n; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	v, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", n, v), nil
}
