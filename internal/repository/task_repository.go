package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"questboard/internal/model"
	"questboard/internal/store"
)

// TaskRepository manages the tasks collection. Every mutation is a
// read-modify-write over the whole collection; there is no finer-grained
// primitive underneath.
type TaskRepository struct {
	store *store.Store
}

func NewTaskRepository(s *store.Store) *TaskRepository {
	return &TaskRepository{store: s}
}

// TaskUpdate carries a partial update; nil fields are left unchanged.
type TaskUpdate struct {
	Title      *string
	Priority   *model.Priority
	Status     *model.Status
	DueDate    *time.Time
	Tags       *[]string
	Subtasks   *[]model.Subtask
	Completed  *bool
	AssignedTo *[]string
}

// Create validates the task, fills defaults, assigns an id and appends it to
// the collection. Returns the generated id.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) (string, error) {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return "", fmt.Errorf("%w: title is required", ErrValidation)
	}
	if task.OwnerID == "" {
		return "", fmt.Errorf("%w: owner id is required", ErrValidation)
	}

	now := time.Now().UTC()
	task.ID = newID("task")
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if !task.Priority.Valid() {
		return "", fmt.Errorf("%w: unknown priority %q", ErrValidation, task.Priority)
	}
	if task.Status == "" {
		task.Status = model.StatusTodo
	}
	if !task.Status.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, task.Status)
	}
	if task.DueDate.IsZero() {
		task.DueDate = now
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if task.Subtasks == nil {
		task.Subtasks = []model.Subtask{}
	}
	if task.AssignedTo == nil {
		task.AssignedTo = []string{}
	}
	task.Completed = false
	task.CreatedAt = now
	task.UpdatedAt = now

	tasks, err := r.GetAll(ctx)
	if err != nil {
		return "", err
	}
	tasks = append(tasks, *task)
	if err := r.store.Save(ctx, store.CollectionTasks, tasks); err != nil {
		return "", err
	}
	return task.ID, nil
}

// GetByID returns the task with the given id from the current snapshot.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*model.Task, error) {
	tasks, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, ErrTaskNotFound
}

// GetAll returns the current snapshot of the tasks collection.
func (r *TaskRepository) GetAll(ctx context.Context) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := r.store.Get(ctx, store.CollectionTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update merges the non-nil fields over the existing task, stamps UpdatedAt
// and saves the whole collection. Returns ErrTaskNotFound when the id is
// absent from the snapshot.
func (r *TaskRepository) Update(ctx context.Context, id string, upd TaskUpdate) error {
	tasks, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range tasks {
		if tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrTaskNotFound
	}

	task := &tasks[idx]
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return fmt.Errorf("%w: title is required", ErrValidation)
		}
		task.Title = title
	}
	if upd.Priority != nil {
		if !upd.Priority.Valid() {
			return fmt.Errorf("%w: unknown priority %q", ErrValidation, *upd.Priority)
		}
		task.Priority = *upd.Priority
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return fmt.Errorf("%w: unknown status %q", ErrValidation, *upd.Status)
		}
		task.Status = *upd.Status
	}
	if upd.DueDate != nil {
		task.DueDate = *upd.DueDate
	}
	if upd.Tags != nil {
		task.Tags = *upd.Tags
	}
	if upd.Subtasks != nil {
		task.Subtasks = *upd.Subtasks
	}
	if upd.Completed != nil {
		task.Completed = *upd.Completed
	}
	if upd.AssignedTo != nil {
		task.AssignedTo = *upd.AssignedTo
	}
	task.UpdatedAt = time.Now().UTC()

	return r.store.Save(ctx, store.CollectionTasks, tasks)
}

// Delete filters the id out and saves. Deleting a missing id is a no-op.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	tasks, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return r.store.Save(ctx, store.CollectionTasks, kept)
}
