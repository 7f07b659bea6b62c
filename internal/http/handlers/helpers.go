package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"parkcareers/internal/common"
)

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		if err == io.EOF {
			return common.NewError(common.CodeValidation, "request body is required", nil)
		}
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

// pathSegment returns the index-th segment of the request path, counting
// from zero after the leading slash.
func pathSegment(r *http.Request, index int) string {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index < 0 || index >= len(parts) {
		return ""
	}
	return parts[index]
}

func sessionIDFromPath(r *http.Request, index int) (common.UUID, error) {
	raw := pathSegment(r, index)
	if raw == "" {
		return "", common.NewValidationError("session id is required", nil)
	}
	id, err := common.ParseUUID(raw)
	if err != nil {
		return "", common.NewValidationError("invalid session id", map[string]string{"id": "invalid uuid"})
	}
	return id, nil
}
