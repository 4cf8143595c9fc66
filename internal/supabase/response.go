package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// Response is a generic API response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// IsNull reports whether the body is JSON null, which is what a MaybeSingle
// query returns when no row matched.
func (r *Response) IsNull() bool {
	return bytes.Equal(bytes.TrimSpace(r.Body), []byte("null"))
}

// Error returns an error if the response indicates failure.
func (r *Response) Error() error {
	if r.StatusCode < 400 {
		return nil
	}
	if gjson.ValidBytes(r.Body) {
		res := gjson.GetManyBytes(r.Body, "message", "error", "code")
		msg, code := res[0].String(), res[2].String()
		if msg == "" {
			msg = res[1].String()
		}
		if msg != "" && code != "" {
			return &APIError{Status: r.StatusCode, Code: code, Message: msg}
		}
		if msg != "" {
			return &APIError{Status: r.StatusCode, Message: msg}
		}
	}
	return &APIError{Status: r.StatusCode, Message: http.StatusText(r.StatusCode)}
}

// APIError is a failed PostgREST response.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase error: status %d: %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("supabase error: status %d: %s", e.Status, e.Message)
}
