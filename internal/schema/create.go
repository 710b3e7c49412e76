package schema

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"taskapi/internal/model"
)

var statusOptions = []string{
	string(model.StatusTodo),
	string(model.StatusInProgress),
	string(model.StatusDone),
}

// createTaskPayload is the raw wire shape of a create request.
type createTaskPayload struct {
	Title       *string `json:"title" validate:"required,min=1"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
}

// CreateTaskInput is a validated, coerced create request.
type CreateTaskInput struct {
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Status      model.TaskStatus `json:"status"`
	StartDate   *time.Time       `json:"startDate"`
	EndDate     *time.Time       `json:"endDate"`
}

// ParseCreateTask validates a create body. Title is trimmed and must be
// non-empty, status defaults to TODO, empty descriptions collapse to
// null, and endDate must not precede startDate.
func ParseCreateTask(data []byte) (*CreateTaskInput, []FieldError, error) {
	var payload createTaskPayload
	if ferrs, err := decodePayload(data, &payload); ferrs != nil || err != nil {
		return nil, ferrs, err
	}

	if payload.Title != nil {
		trimmed := strings.TrimSpace(*payload.Title)
		payload.Title = &trimmed
	}

	var errs []FieldError
	if err := validate.Struct(&payload); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, nil, err
		}
		for _, fe := range verrs {
			switch fe.Field() {
			case "title":
				errs = append(errs, FieldError{Field: "title", Message: "Title is required and cannot be empty"})
			}
		}
	}

	input := &CreateTaskInput{Status: model.StatusTodo}
	if payload.Title != nil {
		input.Title = *payload.Title
	}
	input.Description = normalizeDescription(payload.Description)

	if payload.Status != nil {
		status := model.TaskStatus(*payload.Status)
		if !status.Valid() {
			errs = append(errs, FieldError{Field: "status", Message: enumMessage(statusOptions, *payload.Status)})
		} else {
			input.Status = status
		}
	}

	input.StartDate, errs = coerceDate("startDate", payload.StartDate, errs)
	input.EndDate, errs = coerceDate("endDate", payload.EndDate, errs)
	errs = checkDateRange(input.StartDate, input.EndDate, errs)

	if len(errs) > 0 {
		return nil, errs, nil
	}
	return input, nil, nil
}

// normalizeDescription trims and collapses empty strings to null.
func normalizeDescription(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func coerceDate(field string, raw *string, errs []FieldError) (*time.Time, []FieldError) {
	if raw == nil {
		return nil, errs
	}
	t, ok := parseDate(*raw)
	if !ok {
		return nil, append(errs, FieldError{Field: field, Message: "Invalid date"})
	}
	return &t, errs
}

func checkDateRange(start, end *time.Time, errs []FieldError) []FieldError {
	if start != nil && end != nil && end.Before(*start) {
		errs = append(errs, FieldError{Field: "endDate", Message: "End date cannot be before start date"})
	}
	return errs
}
