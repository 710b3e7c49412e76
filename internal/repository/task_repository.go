package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"taskapi/internal/model"
	"taskapi/internal/schema"
)

var (
	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")
)

// TaskFilter narrows a listing: exact status match plus a
// case-insensitive substring search against the title.
type TaskFilter struct {
	Status *model.TaskStatus
	Search string
}

// TaskSort orders a listing by one of the enumerated sort keys.
type TaskSort struct {
	Key   schema.SortKey
	Order schema.SortOrder
}

// sortColumns translates the API's sort keys to column names. Keys
// outside this map never reach the query builder.
var sortColumns = map[schema.SortKey]string{
	schema.SortByTitle:     "title",
	schema.SortByStatus:    "status",
	schema.SortByCreatedAt: "created_at",
	schema.SortByUpdatedAt: "updated_at",
	schema.SortByStartDate: "start_date",
	schema.SortByEndDate:   "end_date",
}

// TaskUpdate is a partial update; nil fields are left untouched.
// SetDescription marks an explicit description change, so that a null
// description clears the column instead of being skipped.
type TaskUpdate struct {
	Title          *string
	Description    *string
	SetDescription bool
	Status         *model.TaskStatus
	StartDate      *time.Time
	EndDate        *time.Time
}

func (u TaskUpdate) columns() map[string]any {
	cols := map[string]any{}
	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.SetDescription {
		cols["description"] = u.Description
	}
	if u.Status != nil {
		cols["status"] = *u.Status
	}
	if u.StartDate != nil {
		cols["start_date"] = *u.StartDate
	}
	if u.EndDate != nil {
		cols["end_date"] = *u.EndDate
	}
	return cols
}

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID retrieves a task by its ID
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// FindMany retrieves all tasks matching the filter, ordered by the sort
func (r *TaskRepository) FindMany(ctx context.Context, filter TaskFilter, sort TaskSort) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Model(&model.Task{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	tasks := []model.Task{}
	if err := query.Order(orderClause(sort)).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func orderClause(sort TaskSort) string {
	column, ok := sortColumns[sort.Key]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if sort.Order == schema.OrderAsc {
		direction = "ASC"
	}
	return column + " " + direction
}

// Update applies a partial update and returns the updated task
func (r *TaskRepository) Update(ctx context.Context, id string, update TaskUpdate) (*model.Task, error) {
	cols := update.columns()
	if len(cols) > 0 {
		result := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(cols)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrTaskNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes a task by its ID
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
