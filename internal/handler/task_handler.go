package handler

import (
	"errors"
	"net/http"
	"time"

	"questboard/internal/gamification"
	"questboard/internal/livesync"
	"questboard/internal/model"
	"questboard/internal/repository"

	"github.com/gin-gonic/gin"
)

// XP awarded per completed task, scaled by priority.
var xpByPriority = map[model.Priority]int{
	model.PriorityLow:    10,
	model.PriorityMedium: 25,
	model.PriorityHigh:   50,
}

type TaskHandler struct {
	taskRepo *repository.TaskRepository
	hook     *gamification.Hook
}

func NewTaskHandler(taskRepo *repository.TaskRepository, hook *gamification.Hook) *TaskHandler {
	return &TaskHandler{
		taskRepo: taskRepo,
		hook:     hook,
	}
}

// TaskRequest представляет запрос на создание задачи
type TaskRequest struct {
	Title      string          `json:"title" binding:"required"`
	OwnerID    string          `json:"owner_id" binding:"required"`
	CreatedBy  string          `json:"created_by"`
	Priority   model.Priority  `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status     model.Status    `json:"status"`
	DueDate    *time.Time      `json:"due_date"`
	Tags       []string        `json:"tags"`
	Subtasks   []model.Subtask `json:"subtasks"`
	AssignedTo []string        `json:"assigned_to"`
}

// TaskUpdateRequest представляет частичное обновление задачи
type TaskUpdateRequest struct {
	Title      *string          `json:"title"`
	Priority   *model.Priority  `json:"priority"`
	Status     *model.Status    `json:"status"`
	DueDate    *time.Time       `json:"due_date"`
	Tags       *[]string        `json:"tags"`
	Subtasks   *[]model.Subtask `json:"subtasks"`
	Completed  *bool            `json:"completed"`
	AssignedTo *[]string        `json:"assigned_to"`
}

// Create создает новую задачу
// @Summary  Create task
// @Tags     Tasks
// @Accept   json
// @Produce  json
// @Param    task body TaskRequest true "Task"
// @Success  201 {object} model.Task
// @Router   /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = req.OwnerID
	}

	task := &model.Task{
		Title:      req.Title,
		OwnerID:    req.OwnerID,
		CreatedBy:  createdBy,
		Priority:   req.Priority,
		Status:     req.Status,
		Tags:       req.Tags,
		Subtasks:   req.Subtasks,
		AssignedTo: req.AssignedTo,
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}

	if _, err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		if errors.Is(err, repository.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetAll возвращает задачи, опционально отфильтрованные по исполнителю
func (h *TaskHandler) GetAll(c *gin.Context) {
	tasks, err := h.taskRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	if assignedTo := c.Query("assigned_to"); assignedTo != "" {
		tasks = livesync.ApplyTaskFilter(tasks, livesync.TaskFilter{AssignedTo: assignedTo})
	}

	c.JSON(http.StatusOK, tasks)
}

// GetByID возвращает задачу по ID
func (h *TaskHandler) GetByID(c *gin.Context) {
	task, err := h.taskRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// Update выполняет частичное обновление задачи
func (h *TaskHandler) Update(c *gin.Context) {
	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	err := h.taskRepo.Update(c.Request.Context(), c.Param("id"), repository.TaskUpdate{
		Title:      req.Title,
		Priority:   req.Priority,
		Status:     req.Status,
		DueDate:    req.DueDate,
		Tags:       req.Tags,
		Subtasks:   req.Subtasks,
		Completed:  req.Completed,
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, repository.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated"})
}

// Delete удаляет задачу
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.taskRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// Complete помечает задачу выполненной и начисляет XP исполнителям
// @Summary  Complete task and award XP
// @Tags     Tasks
// @Produce  json
// @Param    id path string true "Task ID"
// @Success  200 {object} model.Task
// @Router   /tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *gin.Context) {
	id := c.Param("id")

	task, err := h.taskRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	// Completing twice must not award XP twice.
	if task.Completed {
		c.JSON(http.StatusOK, task)
		return
	}

	completed := true
	done := model.StatusDone
	err = h.taskRepo.Update(c.Request.Context(), id, repository.TaskUpdate{
		Completed: &completed,
		Status:    &done,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete task"})
		return
	}

	award := xpByPriority[task.Priority]
	levelUps := []*model.Member{}
	for _, memberID := range task.AssignedTo {
		member, err := h.hook.AddXP(c.Request.Context(), memberID, award)
		if err != nil {
			// Already logged at the hook boundary; the task stays completed.
			continue
		}
		if member != nil {
			levelUps = append(levelUps, member)
		}
	}

	task, err = h.taskRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task":       task,
		"xp_awarded": award,
		"level_ups":  levelUps,
	})
}
