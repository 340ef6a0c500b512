// Package sms defines the provider port the gateway services depend on
// and a health probe for it.
package sms

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oggyb/zensend-gateway/pkg/zensend"
)

// Provider is the subset of the ZenSend client used by the services.
// *zensend.Client satisfies it; tests substitute fakes.
type Provider interface {
	SendSMS(ctx context.Context, m zensend.Message) (*zensend.SMSResult, error)
	CheckBalance(ctx context.Context) (decimal.Decimal, error)
	GetPrices(ctx context.Context) (map[string]decimal.Decimal, error)
	LookupOperator(ctx context.Context, number string) (*zensend.OperatorLookupResult, error)
	CreateSubAccount(ctx context.Context, name string) (*zensend.CreateSubAccountResult, error)
	CreateKeyword(ctx context.Context, k zensend.Keyword) (*zensend.CreateKeywordResult, error)
	CreateMsisdnVerification(ctx context.Context, number string, opts zensend.VerificationOptions) (string, error)
	MsisdnVerificationStatus(ctx context.Context, session string) (string, error)
}

var _ Provider = (*zensend.Client)(nil)

// HealthTimeout bounds the balance probe when the caller has no deadline.
const HealthTimeout = 5 * time.Second

// withTimeout wraps the context with a timeout if it doesn't already have one.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// Health checks that the provider accepts our API key by fetching the
// account balance, which it returns on success.
func Health(ctx context.Context, p Provider) (decimal.Decimal, error) {
	ctx, cancel := withTimeout(ctx, HealthTimeout)
	defer cancel()

	balance, err := p.CheckBalance(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("health: %w", err)
	}
	return balance, nil
}
