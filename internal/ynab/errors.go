package ynab

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	ID         string
	Name       string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Name == "" && e.Detail == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Name, e.Detail)
}

// Unauthorized reports whether the token was rejected.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

type errorResponse struct {
	Error struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Detail string `json:"detail"`
	} `json:"error"`
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		e.ID = er.Error.ID
		e.Name = er.Error.Name
		e.Detail = er.Error.Detail
	}
	if e.Name == "" && e.Detail == "" {
		e.Detail = strings.TrimSpace(string(body))
		if e.Detail != "" {
			e.Name = http.StatusText(status)
		}
	}
	return e
}
