package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskapi/internal/middleware"
	"taskapi/internal/model"
	"taskapi/internal/repository"
	"taskapi/internal/schema"
)

// TaskStore is the persistence surface the task endpoints depend on.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	FindMany(ctx context.Context, filter repository.TaskFilter, sort repository.TaskSort) ([]model.Task, error)
	Update(ctx context.Context, id string, update repository.TaskUpdate) (*model.Task, error)
	Delete(ctx context.Context, id string) error
}

type TaskHandler struct {
	store TaskStore
}

func NewTaskHandler(store TaskStore) *TaskHandler {
	return &TaskHandler{store: store}
}

// Create godoc
// @Summary  Create a task
// @Tags     Tasks
// @Accept   json
// @Produce  json
// @Param    task body schema.CreateTaskInput true "Task fields"
// @Success  201 {object} handler.Response
// @Failure  400 {object} handler.Response
// @Router   /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	input := c.MustGet(middleware.ValidatedBodyKey).(*schema.CreateTaskInput)

	task := &model.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}

	if err := h.store.Create(c.Request.Context(), task); err != nil {
		log.Printf("❌ Error creating task: %v", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to create task",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: "Task created successfully",
		Data:    task,
	})
}

// List godoc
// @Summary  List tasks
// @Tags     Tasks
// @Produce  json
// @Param    status query string false "Filter by status" Enums(TODO, IN_PROGRESS, DONE)
// @Param    search query string false "Case-insensitive title search"
// @Param    sortBy query string false "Sort key" Enums(title, status, createdAt, updatedAt, startDate, endDate)
// @Param    order query string false "Sort order" Enums(asc, desc)
// @Success  200 {object} handler.Response
// @Router   /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	query := c.MustGet(middleware.ValidatedQueryKey).(*schema.ListTasksQuery)

	filter := repository.TaskFilter{Status: query.Status, Search: query.Search}
	sort := repository.TaskSort{Key: query.SortBy, Order: query.Order}

	tasks, err := h.store.FindMany(c.Request.Context(), filter, sort)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to fetch tasks",
			Error:   err.Error(),
		})
		return
	}

	count := len(tasks)
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Tasks retrieved successfully",
		Data:    tasks,
		Count:   &count,
	})
}

// GetByID godoc
// @Summary  Get a task
// @Tags     Tasks
// @Produce  json
// @Param    id path string true "Task ID (24 hex characters)"
// @Success  200 {object} handler.Response
// @Failure  404 {object} handler.Response
// @Router   /api/tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id := c.MustGet(middleware.ValidatedParamsKey).(string)

	task, err := h.store.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, Response{Success: false, Message: "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to fetch task",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Task retrieved successfully",
		Data:    task,
	})
}

// Update godoc
// @Summary  Update a task
// @Tags     Tasks
// @Accept   json
// @Produce  json
// @Param    id path string true "Task ID (24 hex characters)"
// @Param    task body object true "Fields to change"
// @Success  200 {object} handler.Response
// @Failure  404 {object} handler.Response
// @Router   /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id := c.MustGet(middleware.ValidatedParamsKey).(string)
	input := c.MustGet(middleware.ValidatedBodyKey).(*schema.UpdateTaskInput)

	if _, err := h.store.FindByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, Response{Success: false, Message: "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to update task",
			Error:   err.Error(),
		})
		return
	}

	update := repository.TaskUpdate{
		Title:          input.Title,
		Description:    input.Description,
		SetDescription: input.HasDescription,
		Status:         input.Status,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
	}

	task, err := h.store.Update(c.Request.Context(), id, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to update task",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Task updated successfully",
		Data:    task,
	})
}

// Delete godoc
// @Summary  Delete a task
// @Tags     Tasks
// @Produce  json
// @Param    id path string true "Task ID (24 hex characters)"
// @Success  200 {object} handler.Response
// @Failure  404 {object} handler.Response
// @Router   /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id := c.MustGet(middleware.ValidatedParamsKey).(string)

	// The response carries the entity as it existed before deletion.
	existing, err := h.store.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, Response{Success: false, Message: "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to delete task",
			Error:   err.Error(),
		})
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to delete task",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Task deleted successfully",
		Data:    existing,
	})
}
