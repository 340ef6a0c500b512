package zensend

import "github.com/shopspring/decimal"

// SMSResult is the success payload of a send-SMS call.
type SMSResult struct {
	TxGUID            string          `json:"txguid"`
	Numbers           int             `json:"numbers"`
	SMSParts          int             `json:"smsparts"`
	Encoding          string          `json:"encoding"`
	CostInPence       decimal.Decimal `json:"cost_in_pence"`
	NewBalanceInPence decimal.Decimal `json:"new_balance_in_pence"`
}

// OperatorLookupResult is the network operator currently serving a number.
type OperatorLookupResult struct {
	MCC               string          `json:"mcc"`
	MNC               string          `json:"mnc"`
	Operator          string          `json:"operator"`
	CostInPence       decimal.Decimal `json:"cost_in_pence"`
	NewBalanceInPence decimal.Decimal `json:"new_balance_in_pence"`
}

type Balance struct {
	Balance decimal.Decimal `json:"balance"`
}

// Prices maps ISO country codes to the per-part price in pence.
type Prices struct {
	PricesInPence map[string]decimal.Decimal `json:"prices_in_pence"`
}

type CreateMsisdnVerificationResult struct {
	Session string `json:"session"`
}

type MsisdnVerificationStatusResult struct {
	Msisdn string `json:"msisdn"`
}

// CreateSubAccountResult holds the new account's name and its own API key.
type CreateSubAccountResult struct {
	Name   string `json:"name"`
	APIKey string `json:"api_key"`
}

type CreateKeywordResult struct {
	CostInPence       decimal.Decimal `json:"cost_in_pence"`
	NewBalanceInPence decimal.Decimal `json:"new_balance_in_pence"`
}
