package perspective

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/valyala/fastjson"
)

// Every error returned by Client.Analyze matches exactly one of these with
// errors.Is.
var (
	ErrEmptyInput    = errors.New("input text is empty")
	ErrEmptyTypes    = errors.New("no attribute types requested")
	ErrRequestFailed = errors.New("analysis request failed")
	ErrParsingFailed = errors.New("analysis response parsing failed")
)

// ParseError describes why a response body could not be mapped to an
// AnalysisResult.
type ParseError struct {
	Detail string
}

func newParseError(format string, args ...any) *ParseError {
	return &ParseError{Detail: fmt.Sprintf(format, args...)}
}

func (e *ParseError) Error() string {
	return ErrParsingFailed.Error() + ": " + e.Detail
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParsingFailed
}

// APIError is a non-2xx answer from the service. It is always reported under
// ErrRequestFailed; use errors.As to reach the status.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("perspective api returned status %d", e.StatusCode)
	if e.Status != "" {
		msg += " " + e.Status
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Temporary reports whether the status is worth retrying by the caller.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// newAPIError reads the Google error envelope
// {"error":{"code":400,"message":"...","status":"INVALID_ARGUMENT"}} when present.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	v, err := fastjson.ParseBytes(body)
	if err != nil {
		return apiErr
	}
	envelope := v.Get("error")
	if envelope == nil {
		return apiErr
	}
	apiErr.Message = string(envelope.GetStringBytes("message"))
	apiErr.Status = string(envelope.GetStringBytes("status"))
	return apiErr
}
