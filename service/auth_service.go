package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cybermonitor-rd/sentinel/core"
	"github.com/cybermonitor-rd/sentinel/ports"
)

const codeDigits = 6

// AuthService orchestrates the two-factor session handshake: primary
// credential in, short-lived challenge out, second-factor code verified,
// session token minted.
type AuthService struct {
	tokenizer ports.Tokenizer
	store     ports.ChallengeStore
	logger    zerolog.Logger

	challengeTTL time.Duration
	sessionTTL   time.Duration
	maxAttempts  int
	role         string

	// echoCode logs issued codes in place of an out-of-band channel.
	// Demo convenience only, off by default.
	echoCode bool
}

// AuthOption customizes an AuthService
type AuthOption func(*AuthService)

// WithEchoCode enables logging of issued challenge codes for local runs
func WithEchoCode() AuthOption {
	return func(s *AuthService) { s.echoCode = true }
}

// WithChallengeTTL overrides the challenge lifetime
func WithChallengeTTL(ttl time.Duration) AuthOption {
	return func(s *AuthService) { s.challengeTTL = ttl }
}

// WithSessionTTL overrides the session token lifetime
func WithSessionTTL(ttl time.Duration) AuthOption {
	return func(s *AuthService) { s.sessionTTL = ttl }
}

// NewAuthService creates a new authentication service
func NewAuthService(
	tokenizer ports.Tokenizer,
	store ports.ChallengeStore,
	logger zerolog.Logger,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		tokenizer:    tokenizer,
		store:        store,
		logger:       logger,
		challengeTTL: 5 * time.Minute,
		sessionTTL:   15 * time.Minute,
		maxAttempts:  5,
		role:         "analyst",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// BeginLogin accepts a primary credential and issues a pending challenge.
// The demo trust model accepts any credential; an external identity
// provider replaces this step in production. The returned challenge carries
// the code for out-of-band delivery; callers must not echo it to the
// requester.
func (s *AuthService) BeginLogin(ctx context.Context, subject, secret string) (*core.Challenge, error) {
	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate challenge code: %w", err)
	}

	now := time.Now()
	challenge := &core.Challenge{
		Ref:       uuid.New().String(),
		Subject:   subject,
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.challengeTTL),
	}

	if err := s.store.Put(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to store challenge: %w", err)
	}

	event := s.logger.Info().Str("subject", subject).Str("ref", challenge.Ref)
	if s.echoCode {
		event = event.Str("code", code)
	}
	event.Msg("challenge issued")

	return challenge, nil
}

// VerifyChallenge consumes a pending challenge. The binding is single-use:
// a successful verification removes it, a wrong code leaves it in place
// with its attempt counter incremented, and once the counter reaches the
// cap every further attempt is rejected as locked until the TTL reaps it.
func (s *AuthService) VerifyChallenge(ctx context.Context, ref, code string) (string, error) {
	challenge, err := s.store.Get(ctx, ref)
	if err != nil {
		return "", err
	}

	if time.Now().After(challenge.ExpiresAt) {
		_, _ = s.store.Delete(ctx, ref)
		return "", core.ErrChallengeExpired
	}

	if challenge.Attempts >= s.maxAttempts {
		return "", core.ErrChallengeLocked
	}

	if challenge.Code != code {
		attempts, err := s.store.RecordFailure(ctx, ref)
		if err != nil {
			// The binding can be consumed or reaped between the read and
			// the increment
			if errors.Is(err, core.ErrChallengeNotFound) {
				return "", core.ErrChallengeNotFound
			}
			return "", fmt.Errorf("failed to record attempt: %w", err)
		}
		// Gate on the count the store returns, not the copy read above;
		// concurrent failures each observe a distinct count
		if attempts > s.maxAttempts {
			return "", core.ErrChallengeLocked
		}
		s.logger.Warn().Str("ref", ref).Int("attempts", attempts).Msg("challenge code mismatch")
		return "", core.ErrCodeMismatch
	}

	// Consumption is decided by the delete: of several concurrent correct
	// submissions, only the one that removes the binding mints a session
	removed, err := s.store.Delete(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("failed to consume challenge: %w", err)
	}
	if !removed {
		return "", core.ErrChallengeNotFound
	}

	now := time.Now()
	session := &core.Session{
		ID:        uuid.New().String(),
		Subject:   challenge.Subject,
		Role:      s.role,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	token, err := s.tokenizer.SessionToToken(session)
	if err != nil {
		return "", fmt.Errorf("failed to create session token: %w", err)
	}

	s.logger.Info().Str("subject", session.Subject).Str("session_id", session.ID).Msg("session issued")

	return token, nil
}

// Authenticate validates a bearer token and returns the session it proves.
// Every token-level failure collapses to core.ErrUnauthorized so callers
// cannot distinguish the cases.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*core.Session, error) {
	session, err := s.tokenizer.TokenToSession(token)
	if err != nil {
		return nil, core.ErrUnauthorized
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, core.ErrUnauthorized
	}

	return session, nil
}

// generateCode draws a fixed-length numeric code from crypto/rand
func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
