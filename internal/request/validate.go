package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// maxBodyBytes caps request bodies read by Decode.
const maxBodyBytes = 1 << 20

// ErrInvalidBody is returned when the body is not valid JSON.
var ErrInvalidBody = errors.New("invalid JSON body")

// ValidationError lists failed fields keyed by their JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, msg := range e.Fields {
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}

var (
	validate = newValidator()
	trans    ut.Translator
)

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their json name so messages match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enT := en.New()
	trans, _ = ut.New(enT, enT).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		panic(fmt.Sprintf("request: register translations: %v", err))
	}
	return v
}

// Decode reads a JSON body into dst and validates it.
// It returns ErrInvalidBody or a *ValidationError.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return Validate(dst)
}

// Validate checks the validate tags of v.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// Drop the top-level struct name: "SendMessageRequest.numbers[0]" → "numbers[0]".
		ns := fe.Namespace()
		fields[ns[strings.Index(ns, ".")+1:]] = fe.Translate(trans)
	}
	return &ValidationError{Fields: fields}
}
