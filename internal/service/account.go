package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/oggyb/zensend-gateway/internal/sms"
	"github.com/oggyb/zensend-gateway/pkg/zensend"
)

// AccountService exposes the provider's account-level operations.
type AccountService interface {
	Balance(ctx context.Context) (decimal.Decimal, error)
	Prices(ctx context.Context) (map[string]decimal.Decimal, error)
	LookupOperator(ctx context.Context, number string) (*zensend.OperatorLookupResult, error)
	CreateSubAccount(ctx context.Context, name string) (*zensend.CreateSubAccountResult, error)
	CreateKeyword(ctx context.Context, k zensend.Keyword) (*zensend.CreateKeywordResult, error)
}

type accountService struct {
	provider sms.Provider
	log      *zap.Logger
}

func NewAccountService(provider sms.Provider) AccountService {
	return &accountService{
		provider: provider,
		log:      zap.L().With(zap.String("component", "account_service")),
	}
}

func (s *accountService) Balance(ctx context.Context) (decimal.Decimal, error) {
	return s.provider.CheckBalance(ctx)
}

func (s *accountService) Prices(ctx context.Context) (map[string]decimal.Decimal, error) {
	return s.provider.GetPrices(ctx)
}

func (s *accountService) LookupOperator(ctx context.Context, number string) (*zensend.OperatorLookupResult, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, fmt.Errorf("%w: number is required", zensend.ErrInvalidArgument)
	}

	res, err := s.provider.LookupOperator(ctx, number)
	if err != nil {
		return nil, err
	}

	s.log.Info("[Account] Operator lookup",
		zap.String("number", number),
		zap.String("operator", res.Operator),
		zap.String("cost", res.CostInPence.String()),
	)
	return res, nil
}

func (s *accountService) CreateSubAccount(ctx context.Context, name string) (*zensend.CreateSubAccountResult, error) {
	res, err := s.provider.CreateSubAccount(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}

	s.log.Info("[Account] Sub-account created", zap.String("name", res.Name))
	return res, nil
}

func (s *accountService) CreateKeyword(ctx context.Context, k zensend.Keyword) (*zensend.CreateKeywordResult, error) {
	res, err := s.provider.CreateKeyword(ctx, k)
	if err != nil {
		return nil, err
	}

	s.log.Info("[Account] Keyword created",
		zap.String("shortcode", k.Shortcode),
		zap.String("keyword", k.Keyword),
		zap.String("cost", res.CostInPence.String()),
	)
	return res, nil
}
