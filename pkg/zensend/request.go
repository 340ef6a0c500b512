package zensend

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	pathSendSMS        = "/v3/sendsms"
	pathMsisdnVerify   = "/api/msisdn_verify"
	pathOperatorLookup = "/v3/operator_lookup"
	pathPrices         = "/v3/prices"
	pathCheckBalance   = "/v3/checkbalance"
	pathSubAccounts    = "/v3/sub_accounts"
	pathKeywords       = "/v3/keywords"
)

// form is a url-encoded field list that keeps insertion order.
// url.Values sorts keys on Encode, which would reorder the provider fields.
type form struct {
	keys   []string
	values []string
}

func (f *form) add(key, value string) *form {
	f.keys = append(f.keys, key)
	f.values = append(f.values, value)
	return f
}

func (f *form) encode() string {
	var b strings.Builder
	for i, k := range f.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.values[i]))
	}
	return b.String()
}

// apiRequest describes a single provider call before it is bound to a base URL.
type apiRequest struct {
	method string
	base   string
	path   string
	form   *form // POST body
	query  *form // GET query string
}

func (r apiRequest) url() string {
	u := r.base + r.path
	if r.query != nil {
		u += "?" + r.query.encode()
	}
	return u
}

func (r apiRequest) body() string {
	if r.form == nil {
		return ""
	}
	return r.form.encode()
}

func assertNoCommas(numbers []string) error {
	for _, n := range numbers {
		if strings.Contains(n, ",") {
			return invalidArgument("comma not allowed in numbers: %q", n)
		}
	}
	return nil
}

func buildSendSMS(base string, m Message) (apiRequest, error) {
	if err := assertNoCommas(m.Numbers); err != nil {
		return apiRequest{}, err
	}
	if m.TimeToLiveInMinutes < 0 {
		return apiRequest{}, invalidArgument("time to live must not be negative: %d", m.TimeToLiveInMinutes)
	}

	f := (&form{}).
		add("BODY", m.Body).
		add("NUMBERS", strings.Join(m.Numbers, ",")).
		add("ORIGINATOR", m.Originator)

	if m.OriginatorType != "" {
		f.add("ORIGINATOR_TYPE", m.OriginatorType.wire())
	}
	if m.TimeToLiveInMinutes > 0 {
		f.add("TIMETOLIVE", strconv.Itoa(m.TimeToLiveInMinutes))
	}
	if m.SMSEncoding != "" {
		f.add("ENCODING", m.SMSEncoding.wire())
	}

	return apiRequest{method: http.MethodPost, base: base, path: pathSendSMS, form: f}, nil
}

func buildCreateMsisdnVerification(base, number string, opts VerificationOptions) apiRequest {
	f := (&form{}).add("NUMBER", number)
	if opts.Message != "" {
		f.add("MESSAGE", opts.Message)
	}
	if opts.Originator != "" {
		f.add("ORIGINATOR", opts.Originator)
	}
	return apiRequest{method: http.MethodPost, base: base, path: pathMsisdnVerify, form: f}
}

func buildMsisdnVerificationStatus(base, session string) apiRequest {
	return apiRequest{
		method: http.MethodGet,
		base:   base,
		path:   pathMsisdnVerify,
		query:  (&form{}).add("SESSION", session),
	}
}

func buildLookupOperator(base, number string) apiRequest {
	return apiRequest{
		method: http.MethodGet,
		base:   base,
		path:   pathOperatorLookup,
		query:  (&form{}).add("NUMBER", number),
	}
}

func buildGetPrices(base string) apiRequest {
	return apiRequest{method: http.MethodGet, base: base, path: pathPrices}
}

func buildCheckBalance(base string) apiRequest {
	return apiRequest{method: http.MethodGet, base: base, path: pathCheckBalance}
}

func buildCreateSubAccount(base, name string) apiRequest {
	return apiRequest{
		method: http.MethodPost,
		base:   base,
		path:   pathSubAccounts,
		form:   (&form{}).add("NAME", name),
	}
}

func buildCreateKeyword(base string, k Keyword) apiRequest {
	f := (&form{}).
		add("SHORTCODE", k.Shortcode).
		add("KEYWORD", k.Keyword)
	if k.IsSticky != nil {
		f.add("IS_STICKY", strconv.FormatBool(*k.IsSticky))
	}
	if k.MOURL != "" {
		f.add("MO_URL", k.MOURL)
	}
	return apiRequest{method: http.MethodPost, base: base, path: pathKeywords, form: f}
}
