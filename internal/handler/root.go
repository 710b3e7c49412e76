package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceInfo godoc
// @Summary  Service description
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   / [get]
func ServiceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task API is running",
		"version": "1.0.0",
		"endpoints": gin.H{
			"tasks": gin.H{
				"create": "POST /api/tasks",
				"getAll": "GET /api/tasks",
				"search": "GET /api/tasks?search=term",
				"getOne": "GET /api/tasks/:id",
				"update": "PUT /api/tasks/:id",
				"delete": "DELETE /api/tasks/:id",
			},
		},
	})
}
