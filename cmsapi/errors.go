package cmsapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx answer from the CMS.
type APIError struct {
	Status  int
	Message string
	// Field name -> messages, as reported by the CMS validator.
	Fields map[string][]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cms: status %d", e.Status)
	}
	return fmt.Sprintf("cms: status %d: %s", e.Status, e.Message)
}

// ValidationErrors exposes the per-field messages, if the CMS sent any.
func (e *APIError) ValidationErrors() map[string][]string {
	return e.Fields
}

// errorBody is the shape of CMS error responses:
//
//	{"statusCode":400,"error":"Bad Request","message":"ValidationError",
//	 "data":{"errors":{"name":["name must be unique"]}}}
type errorBody struct {
	Error   string          `json:"error"`
	Message json.RawMessage `json:"message"`
	Data    struct {
		Errors map[string][]string `json:"errors"`
	} `json:"data"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		if len(apiErr.Message) > 512 {
			apiErr.Message = apiErr.Message[:512]
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
		return apiErr
	}

	var msg string
	if err := json.Unmarshal(parsed.Message, &msg); err != nil || msg == "" {
		msg = parsed.Error
	}
	apiErr.Message = msg
	if len(parsed.Data.Errors) > 0 {
		apiErr.Fields = parsed.Data.Errors
	}
	return apiErr
}
