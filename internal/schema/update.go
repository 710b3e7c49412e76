package schema

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"taskapi/internal/model"
)

// UpdateTaskInput is a validated partial update. Pointer fields are nil
// when the request did not change them; HasDescription distinguishes an
// absent description from an explicit null or empty one, which clears
// the stored value.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	HasDescription bool
	Status         *model.TaskStatus
	StartDate      *time.Time
	EndDate        *time.Time
}

// ParseUpdateTask validates an update body. Every field is optional and
// no defaults are injected. Null dates are ignored rather than cleared.
func ParseUpdateTask(data []byte) (*UpdateTaskInput, []FieldError, error) {
	var raw map[string]json.RawMessage
	if ferrs, err := decodePayload(data, &raw); ferrs != nil || err != nil {
		return nil, ferrs, err
	}

	input := &UpdateTaskInput{}
	var errs []FieldError

	if msg, ok := raw["title"]; ok {
		title, isString := rawString(msg)
		trimmed := strings.TrimSpace(title)
		if !isString || trimmed == "" {
			errs = append(errs, FieldError{Field: "title", Message: "Title cannot be empty"})
		} else {
			input.Title = &trimmed
		}
	}

	if msg, ok := raw["description"]; ok {
		input.HasDescription = true
		if !isNull(msg) {
			desc, isString := rawString(msg)
			if !isString {
				errs = append(errs, FieldError{Field: "description", Message: "Expected string"})
			} else {
				input.Description = normalizeDescription(&desc)
			}
		}
	}

	if msg, ok := raw["status"]; ok {
		s, isString := rawString(msg)
		if !isString || !model.TaskStatus(s).Valid() {
			received := strings.Trim(string(bytes.TrimSpace(msg)), `"`)
			errs = append(errs, FieldError{Field: "status", Message: enumMessage(statusOptions, received)})
		} else {
			status := model.TaskStatus(s)
			input.Status = &status
		}
	}

	input.StartDate, errs = coerceRawDate("startDate", raw, errs)
	input.EndDate, errs = coerceRawDate("endDate", raw, errs)
	errs = checkDateRange(input.StartDate, input.EndDate, errs)

	if len(errs) > 0 {
		return nil, errs, nil
	}
	return input, nil, nil
}

func coerceRawDate(field string, raw map[string]json.RawMessage, errs []FieldError) (*time.Time, []FieldError) {
	msg, ok := raw[field]
	if !ok || isNull(msg) {
		return nil, errs
	}
	s, isString := rawString(msg)
	if !isString {
		return nil, append(errs, FieldError{Field: field, Message: "Invalid date"})
	}
	t, ok := parseDate(s)
	if !ok {
		return nil, append(errs, FieldError{Field: field, Message: "Invalid date"})
	}
	return &t, errs
}

func rawString(msg json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return "", false
	}
	return s, true
}

func isNull(msg json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(msg), []byte("null"))
}
