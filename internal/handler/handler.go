package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"admin-panel/internal/model"
	"admin-panel/internal/response"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// writeError writes the failure envelope for err.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	response.Error(w, r, err, logger)
}

func invalidBody(message string) error {
	return model.NewDomainError(model.KindValidation, model.ErrCodeInvalidJSON, message)
}

func fieldError(field, message string) error {
	return model.NewValidationError([]model.FieldError{{Field: field, Message: message}})
}

// decodeJSON decodes a single JSON object into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}

	if dec.More() {
		return invalidBody("request body must contain a single JSON object")
	}

	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var sizeErr *http.MaxBytesError

	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return invalidBody("request body must be a JSON object")
		}
		return fieldError(field, fmt.Sprintf("%s must be %s", field, jsonKind(typeErr.Type)))
	case errors.As(err, &sizeErr):
		return invalidBody(fmt.Sprintf("request body must not exceed %d bytes", sizeErr.Limit))
	case errors.Is(err, io.EOF):
		return invalidBody("request body is required")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return fieldError(field, "property "+field+" should not exist")
	default:
		return invalidBody(response.Messages.Text(response.MsgInvalidJSON, "request body is not valid JSON"))
	}
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == decimalType {
		return "a number"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}

// parseID reads the {id} path value.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fieldError("id", "id must be a positive integer")
	}
	return id, nil
}

// queryParser reads typed query parameters, collecting every failure.
type queryParser struct {
	values url.Values
	errs   []model.FieldError
}

func newQueryParser(r *http.Request, allowed ...string) *queryParser {
	p := &queryParser{values: r.URL.Query()}

	known := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		known[name] = true
	}

	var unknown []string
	for name := range p.values {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		p.add(name, "property "+name+" should not exist")
	}

	return p
}

func (p *queryParser) add(field, message string) {
	p.errs = append(p.errs, model.FieldError{Field: field, Message: message})
}

func (p *queryParser) intParam(name string, def int) int {
	raw := strings.TrimSpace(p.values.Get(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.add(name, name+" must be an integer")
		return def
	}
	return v
}

func (p *queryParser) int64Param(name string) *int64 {
	raw := strings.TrimSpace(p.values.Get(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		p.add(name, name+" must be an integer")
		return nil
	}
	return &v
}

func (p *queryParser) listQuery() model.ListQuery {
	return model.ListQuery{
		Page:   p.intParam("page", model.DefaultPage),
		Limit:  p.intParam("limit", model.DefaultLimit),
		Search: p.values.Get("search"),
	}
}

// validate merges parse failures with the range checks of the parsed values.
func (p *queryParser) validate(rangeErrs []model.FieldError) error {
	all := append(p.errs, rangeErrs...)
	if len(all) == 0 {
		return nil
	}
	return model.NewValidationError(all)
}

// NotFound answers requests that match no route.
func NotFound(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, model.NewDomainError(
			model.KindNotFound,
			model.ErrCodeRouteNotFound,
			response.Messages.Text(response.MsgRouteNotFound, "route not found"),
		), logger)
	}
}
