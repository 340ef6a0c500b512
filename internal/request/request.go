// Package request holds the JSON bodies accepted by the HTTP API.
package request

// SchedulerRequest represents the JSON body for scheduler control.
type SchedulerRequest struct {
	// Action controls the scheduler. Allowed values:
	// - "start": start processing batches
	// - "stop":  stop processing batches
	Action string `json:"action" validate:"required,oneof=start stop"`
}

// SendMessageRequest queues an SMS for delivery by the scheduler.
type SendMessageRequest struct {
	Originator string   `json:"originator" validate:"required,max=20"`
	Body       string   `json:"body" validate:"required"`
	Numbers    []string `json:"numbers" validate:"required,min=1,max=100,dive,required,numeric"`
	// OriginatorType is "alpha" or "msisdn" in either case.
	OriginatorType      string `json:"originatorType,omitempty" validate:"omitempty,oneof=alpha msisdn ALPHA MSISDN"`
	TimeToLiveInMinutes int    `json:"timeToLiveInMinutes,omitempty" validate:"gte=0"`
	// Encoding is "gsm" or "ucs2" in either case.
	Encoding string `json:"encoding,omitempty" validate:"omitempty,oneof=gsm ucs2 GSM UCS2"`
}

type CreateSubAccountRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateKeywordRequest struct {
	Shortcode string `json:"shortcode" validate:"required"`
	Keyword   string `json:"keyword" validate:"required"`
	IsSticky  *bool  `json:"isSticky,omitempty"`
	MOURL     string `json:"moUrl,omitempty" validate:"omitempty,url"`
}

// StartVerificationRequest starts a number verification. Message may
// contain the {{token}} placeholder for the provider-generated code.
type StartVerificationRequest struct {
	Number     string `json:"number" validate:"required,numeric"`
	Message    string `json:"message,omitempty"`
	Originator string `json:"originator,omitempty"`
}
