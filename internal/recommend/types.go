package recommend

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// UploadResult mirrors the /upload-csv success payload.
type UploadResult struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	// File is the base name of the uploaded file; not part of the payload.
	File string `json:"-"`
}

type productRequest struct {
	Products []string `json:"products"`
}

type userRequest struct {
	UserID string `json:"user_id"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Path, e.Status)
}

func newAPIError(path string, status int, body []byte) *APIError {
	apiErr := &APIError{Path: path, Status: status}
	var decoded errorBody
	if err := json.Unmarshal(body, &decoded); err == nil {
		switch {
		case strings.TrimSpace(decoded.Error) != "":
			apiErr.Message = strings.TrimSpace(decoded.Error)
		case strings.TrimSpace(decoded.Message) != "":
			apiErr.Message = strings.TrimSpace(decoded.Message)
		}
	}
	return apiErr
}
