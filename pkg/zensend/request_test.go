package zensend

import (
	"errors"
	"net/http"
	"testing"
)

func TestBuildSendSMS_StableEncoding(t *testing.T) {
	m := Message{
		Originator: "orig",
		Body:       "message body",
		Numbers:    []string{"44787878787", "449999999999"},
	}
	want := "BODY=message+body&NUMBERS=44787878787%2C449999999999&ORIGINATOR=orig"

	for i := 0; i < 5; i++ {
		r, err := buildSendSMS("http://x", m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := r.body(); got != want {
			t.Fatalf("run %d: got %s, want %s", i, got, want)
		}
	}
}

func TestBuildSendSMS_OptionalFields(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{
			name: "msisdn originator only",
			msg:  Message{Originator: "447700900000", Body: "b", Numbers: []string{"1"}, OriginatorType: OriginatorMSISDN},
			want: "BODY=b&NUMBERS=1&ORIGINATOR=447700900000&ORIGINATOR_TYPE=msisdn",
		},
		{
			name: "ucs2 encoding only",
			msg:  Message{Originator: "o", Body: "b", Numbers: []string{"1"}, SMSEncoding: EncodingUCS2},
			want: "BODY=b&NUMBERS=1&ORIGINATOR=o&ENCODING=ucs2",
		},
		{
			name: "ttl only",
			msg:  Message{Originator: "o", Body: "b", Numbers: []string{"1"}, TimeToLiveInMinutes: 5},
			want: "BODY=b&NUMBERS=1&ORIGINATOR=o&TIMETOLIVE=5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := buildSendSMS("http://x", tt.msg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := r.body(); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBuildSendSMS_RejectsCommas(t *testing.T) {
	_, err := buildSendSMS("http://x", Message{Numbers: []string{"1", "2,3"}})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestBuildSendSMS_RejectsNegativeTimeToLive(t *testing.T) {
	_, err := buildSendSMS("http://x", Message{Originator: "o", Body: "b", Numbers: []string{"1"}, TimeToLiveInMinutes: -1})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestBuildQueryRequests(t *testing.T) {
	tests := []struct {
		name   string
		req    apiRequest
		method string
		url    string
	}{
		{"status", buildMsisdnVerificationStatus("https://verify", "a b"), http.MethodGet, "https://verify/api/msisdn_verify?SESSION=a+b"},
		{"operator", buildLookupOperator("https://api", "447777777777"), http.MethodGet, "https://api/v3/operator_lookup?NUMBER=447777777777"},
		{"prices", buildGetPrices("https://api"), http.MethodGet, "https://api/v3/prices"},
		{"balance", buildCheckBalance("https://api"), http.MethodGet, "https://api/v3/checkbalance"},
		{"sub account", buildCreateSubAccount("https://api", "Name"), http.MethodPost, "https://api/v3/sub_accounts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.req.method != tt.method || tt.req.url() != tt.url {
				t.Fatalf("got %s %s, want %s %s", tt.req.method, tt.req.url(), tt.method, tt.url)
			}
		})
	}
}

func TestBuildCreateKeyword_OmitsUnsetOptionals(t *testing.T) {
	r := buildCreateKeyword("https://api", Keyword{Shortcode: "88008", Keyword: "PIZZA"})
	if got, want := r.body(), "SHORTCODE=88008&KEYWORD=PIZZA"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	notSticky := false
	r = buildCreateKeyword("https://api", Keyword{Shortcode: "88008", Keyword: "PIZZA", IsSticky: &notSticky})
	if got, want := r.body(), "SHORTCODE=88008&KEYWORD=PIZZA&IS_STICKY=false"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
