package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/oggyb/zensend-gateway/internal/cache"
	"github.com/oggyb/zensend-gateway/internal/sms"
	"github.com/oggyb/zensend-gateway/pkg/zensend"
)

// Verification is the state of one number verification.
type Verification struct {
	Session string
	// Number is the number the verification was started for. Empty when
	// the session was not started through this gateway or has expired locally.
	Number string
	// Msisdn is the number the provider reports as verified; empty until
	// the user has completed the verification.
	Msisdn string
}

// Verified reports whether the provider has confirmed a number.
func (v Verification) Verified() bool {
	return v.Msisdn != ""
}

type VerificationService interface {
	Start(ctx context.Context, number string, opts zensend.VerificationOptions) (*Verification, error)
	Status(ctx context.Context, session string) (*Verification, error)
}

type verificationService struct {
	provider sms.Provider
	cache    cache.Cache
	ttl      time.Duration
	log      *zap.Logger
}

// NewVerificationService stores each started session in c for ttl so that
// status lookups can report which number was requested. c may be nil.
func NewVerificationService(provider sms.Provider, c cache.Cache, ttl time.Duration) VerificationService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &verificationService{
		provider: provider,
		cache:    c,
		ttl:      ttl,
		log:      zap.L().With(zap.String("component", "verification_service")),
	}
}

func (s *verificationService) Start(ctx context.Context, number string, opts zensend.VerificationOptions) (*Verification, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, fmt.Errorf("%w: number is required", zensend.ErrInvalidArgument)
	}

	session, err := s.provider.CreateMsisdnVerification(ctx, number, opts)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.VerifySessions.Key(session), number, s.ttl); err != nil {
			s.log.Warn("[Verification] Failed to store session", zap.String("session", session), zap.Error(err))
		}
	}

	s.log.Info("[Verification] Started", zap.String("session", session))
	return &Verification{Session: session, Number: number}, nil
}

func (s *verificationService) Status(ctx context.Context, session string) (*Verification, error) {
	session = strings.TrimSpace(session)
	if session == "" {
		return nil, fmt.Errorf("%w: session is required", zensend.ErrInvalidArgument)
	}

	msisdn, err := s.provider.MsisdnVerificationStatus(ctx, session)
	if err != nil {
		return nil, err
	}

	v := &Verification{Session: session, Msisdn: msisdn}

	if s.cache != nil {
		number, err := s.cache.Get(ctx, cache.VerifySessions.Key(session))
		switch {
		case err == nil:
			v.Number = number
		case errors.Is(err, cache.ErrNotFound):
		default:
			s.log.Warn("[Verification] Failed to read session", zap.String("session", session), zap.Error(err))
		}
	}

	return v, nil
}
