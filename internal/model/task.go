package model

import (
	"time"

	nanoid "github.com/jaevor/go-nanoid"
	"gorm.io/gorm"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// Valid reports whether s is one of the defined status values.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          string     `gorm:"type:char(24);primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `gorm:"type:varchar(16);not null" json:"status"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Identifiers are 24 lowercase hex characters, the same format every
// :id route validates before touching the store.
var newTaskID = mustHexGenerator(24)

func mustHexGenerator(length int) func() string {
	gen, err := nanoid.CustomASCII("0123456789abcdef", length)
	if err != nil {
		panic(err)
	}
	return gen
}

// NewTaskID returns a fresh 24-character hex identifier.
func NewTaskID() string {
	return newTaskID()
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = NewTaskID()
	}
	return nil
}
