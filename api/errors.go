package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is returned by Client methods when the API responds with a status
// other than 200 OK.
type Error struct {
	// Method is the HTTP request method.
	Method string `json:"method"`
	// Path is the HTTP request path.
	Path string `json:"path"`
	// Code is the HTTP status of the response.
	Code int32 `json:"code"`
	// Message is the response body.
	Message string `json:"message"`
}

func (e Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%d %v", e.Code, strings.ToLower(http.StatusText(int(e.Code))))
	}
	return fmt.Sprintf("%d - %s", e.Code, e.Message)
}

// ErrorStatusCode returns the HTTP status of err, or 0 when err is not an
// Error.
func ErrorStatusCode(err error) int32 {
	var apiError Error
	if errors.As(err, &apiError) {
		return apiError.Code
	}
	return 0
}
