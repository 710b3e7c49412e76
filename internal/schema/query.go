package schema

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"

	"taskapi/internal/model"
)

// SortKey enumerates the fields a task listing may be ordered by.
type SortKey string

const (
	SortByTitle     SortKey = "title"
	SortByStatus    SortKey = "status"
	SortByCreatedAt SortKey = "createdAt"
	SortByUpdatedAt SortKey = "updatedAt"
	SortByStartDate SortKey = "startDate"
	SortByEndDate   SortKey = "endDate"
)

// SortOrder is the listing direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

var (
	sortKeyOptions = []string{"title", "status", "createdAt", "updatedAt", "startDate", "endDate"}
	orderOptions   = []string{"asc", "desc"}
)

type listTasksPayload struct {
	Status string `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Search string `json:"search"`
	SortBy string `json:"sortBy" validate:"omitempty,oneof=title status createdAt updatedAt startDate endDate"`
	Order  string `json:"order" validate:"omitempty,oneof=asc desc"`
}

// ListTasksQuery is a validated listing request with defaults applied:
// sortBy createdAt, order desc.
type ListTasksQuery struct {
	Status *model.TaskStatus
	Search string
	SortBy SortKey
	Order  SortOrder
}

// ParseListTasksQuery validates the query string of a listing request.
func ParseListTasksQuery(values url.Values) (*ListTasksQuery, []FieldError) {
	payload := listTasksPayload{
		Status: values.Get("status"),
		Search: values.Get("search"),
		SortBy: values.Get("sortBy"),
		Order:  values.Get("order"),
	}

	if err := validate.Struct(&payload); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, []FieldError{{Field: "query", Message: err.Error()}}
		}
		var errs []FieldError
		for _, fe := range verrs {
			received, _ := fe.Value().(string)
			switch fe.Field() {
			case "status":
				errs = append(errs, FieldError{Field: "status", Message: enumMessage(statusOptions, received)})
			case "sortBy":
				errs = append(errs, FieldError{Field: "sortBy", Message: enumMessage(sortKeyOptions, received)})
			case "order":
				errs = append(errs, FieldError{Field: "order", Message: enumMessage(orderOptions, received)})
			}
		}
		return nil, errs
	}

	query := &ListTasksQuery{
		Search: payload.Search,
		SortBy: SortByCreatedAt,
		Order:  OrderDesc,
	}
	if payload.Status != "" {
		status := model.TaskStatus(payload.Status)
		query.Status = &status
	}
	if payload.SortBy != "" {
		query.SortBy = SortKey(payload.SortBy)
	}
	if payload.Order != "" {
		query.Order = SortOrder(payload.Order)
	}
	return query, nil
}
