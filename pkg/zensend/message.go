package zensend

import "strings"

// OriginatorType tells the provider how to interpret Message.Originator.
type OriginatorType string

const (
	OriginatorAlpha  OriginatorType = "ALPHA"
	OriginatorMSISDN OriginatorType = "MSISDN"
)

// SMSEncoding selects the character set used for the message body.
type SMSEncoding string

const (
	EncodingGSM  SMSEncoding = "GSM"
	EncodingUCS2 SMSEncoding = "UCS2"
)

// Message is an outbound SMS. Zero values of the optional fields
// (OriginatorType, TimeToLiveInMinutes, SMSEncoding) are left out of the request.
// A negative TimeToLiveInMinutes is rejected with ErrInvalidArgument.
type Message struct {
	Originator          string
	Body                string
	Numbers             []string
	OriginatorType      OriginatorType
	TimeToLiveInMinutes int
	SMSEncoding         SMSEncoding
}

// wire returns the lower-cased value the provider expects.
func (t OriginatorType) wire() string { return strings.ToLower(string(t)) }

func (e SMSEncoding) wire() string { return strings.ToLower(string(e)) }

// VerificationOptions carries the optional fields of a verification request.
type VerificationOptions struct {
	Message    string
	Originator string
}

// Keyword describes an inbound keyword registration on a shortcode.
type Keyword struct {
	Shortcode string
	Keyword   string
	// IsSticky is sent only when non-nil.
	IsSticky *bool
	MOURL    string
}
