package jsonapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	ddjsonapi "github.com/DataDog/jsonapi"
)

// fallbackErrorDocument is written when an error document cannot be marshaled.
var fallbackErrorDocument = []byte(`{"errors":[{"status":"500","code":"internal_error","title":"Internal Server Error"}]}`)

// ErrorObject builds a JSON:API error object for status with a client-safe detail.
func ErrorObject(status int, detail string) *ddjsonapi.Error {
	return &ddjsonapi.Error{
		Status: &status,
		Code:   ErrorCode(status),
		Title:  http.StatusText(status),
		Detail: detail,
	}
}

// ErrorDocument marshals errors under the top-level "errors" member.
func ErrorDocument(errs ...*ddjsonapi.Error) []byte {
	data, err := json.Marshal(map[string][]*ddjsonapi.Error{"errors": errs})
	if err != nil {
		return fallbackErrorDocument
	}
	return data
}

// ErrorCode derives a snake_case code from an HTTP status, e.g. 404 -> "not_found".
func ErrorCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "status_" + strconv.Itoa(status)
	}
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}
