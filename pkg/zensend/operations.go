package zensend

import (
	"context"

	"github.com/shopspring/decimal"
)

// SendSMS sends m to every number in m.Numbers. No number may contain a
// comma; such a message is rejected with ErrInvalidArgument before any
// request is made.
func (c *Client) SendSMS(ctx context.Context, m Message) (*SMSResult, error) {
	r, err := buildSendSMS(c.url, m)
	if err != nil {
		return nil, err
	}
	return call[SMSResult](ctx, c, r)
}

// CreateMsisdnVerification starts verifying number and returns the session id.
func (c *Client) CreateMsisdnVerification(ctx context.Context, number string, opts VerificationOptions) (string, error) {
	res, err := call[CreateMsisdnVerificationResult](ctx, c, buildCreateMsisdnVerification(c.verifyURL, number, opts))
	if err != nil {
		return "", err
	}
	return res.Session, nil
}

// MsisdnVerificationStatus returns the msisdn verified by session, or an
// empty string while the verification is still pending.
func (c *Client) MsisdnVerificationStatus(ctx context.Context, session string) (string, error) {
	res, err := call[MsisdnVerificationStatusResult](ctx, c, buildMsisdnVerificationStatus(c.verifyURL, session))
	if err != nil {
		return "", err
	}
	return res.Msisdn, nil
}

func (c *Client) LookupOperator(ctx context.Context, number string) (*OperatorLookupResult, error) {
	return call[OperatorLookupResult](ctx, c, buildLookupOperator(c.url, number))
}

// GetPrices returns the price per message part in pence, keyed by country code.
func (c *Client) GetPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	res, err := call[Prices](ctx, c, buildGetPrices(c.url))
	if err != nil {
		return nil, err
	}
	return res.PricesInPence, nil
}

// CheckBalance returns the account balance in pence.
func (c *Client) CheckBalance(ctx context.Context) (decimal.Decimal, error) {
	res, err := call[Balance](ctx, c, buildCheckBalance(c.url))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return res.Balance, nil
}

func (c *Client) CreateSubAccount(ctx context.Context, name string) (*CreateSubAccountResult, error) {
	return call[CreateSubAccountResult](ctx, c, buildCreateSubAccount(c.url, name))
}

func (c *Client) CreateKeyword(ctx context.Context, k Keyword) (*CreateKeywordResult, error) {
	return call[CreateKeywordResult](ctx, c, buildCreateKeyword(c.url, k))
}
