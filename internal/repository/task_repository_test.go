package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"taskapi/internal/model"
	"taskapi/internal/repository"
	"taskapi/internal/schema"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func taskRows(tasks ...model.Task) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "description", "status",
		"start_date", "end_date", "created_at", "updated_at",
	})
	for _, task := range tasks {
		rows.AddRow(
			task.ID, task.Title, task.Description, task.Status,
			task.StartDate, task.EndDate, task.CreatedAt, task.UpdatedAt,
		)
	}
	return rows
}

func TestTaskRepository_Create(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	task := &model.Task{Title: "Buy milk", Status: model.StatusTodo}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "tasks"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Create(context.Background(), task)

	// Assert
	assert.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{24}$`, task.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_FindByID_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	id := "507f1f77bcf86cd799439011"
	stored := model.Task{
		ID:        id,
		Title:     "Buy milk",
		Status:    model.StatusTodo,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = .*`).
		WillReturnRows(taskRows(stored))

	// Act
	task, err := taskRepo.FindByID(context.Background(), id)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, id, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, model.StatusTodo, task.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_FindByID_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	id := "507f1f77bcf86cd799439011"

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	task, err := taskRepo.FindByID(context.Background(), id)

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_FindMany_StatusAndSearch(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	status := model.StatusDone
	first := model.Task{ID: "507f1f77bcf86cd799439011", Title: "Apples", Status: status}
	second := model.Task{ID: "507f1f77bcf86cd799439012", Title: "Bananas", Status: status}

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE status = .* AND title ILIKE .* ORDER BY title ASC`).
		WithArgs(string(status), "%a%").
		WillReturnRows(taskRows(first, second))

	// Act
	tasks, err := taskRepo.FindMany(context.Background(),
		repository.TaskFilter{Status: &status, Search: "a"},
		repository.TaskSort{Key: schema.SortByTitle, Order: schema.OrderAsc},
	)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, "Apples", tasks[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_FindMany_Empty(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "tasks" ORDER BY created_at DESC`).
		WillReturnRows(taskRows())

	// Act
	tasks, err := taskRepo.FindMany(context.Background(),
		repository.TaskFilter{},
		repository.TaskSort{Key: schema.SortByCreatedAt, Order: schema.OrderDesc},
	)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Len(t, tasks, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_PartialColumns(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	id := "507f1f77bcf86cd799439011"
	status := model.StatusDone
	updated := model.Task{ID: id, Title: "Buy milk", Status: status}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = .*`).
		WillReturnRows(taskRows(updated))

	// Act
	task, err := taskRepo.Update(context.Background(), id, repository.TaskUpdate{Status: &status})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, model.StatusDone, task.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_NoColumnsSkipsWrite(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	id := "507f1f77bcf86cd799439011"
	stored := model.Task{ID: id, Title: "Buy milk", Status: model.StatusTodo}

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = .*`).
		WillReturnRows(taskRows(stored))

	// Act
	task, err := taskRepo.Update(context.Background(), id, repository.TaskUpdate{})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	title := "New title"

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Act
	task, err := taskRepo.Update(context.Background(), "507f1f77bcf86cd799439011",
		repository.TaskUpdate{Title: &title})

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	id := "507f1f77bcf86cd799439011"

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = .*`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Delete(context.Background(), id)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Delete(context.Background(), "507f1f77bcf86cd799439011")

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
