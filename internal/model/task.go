package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Subtask is an ordered checklist entry inside a task.
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task lives in the local collection store only. ID and CreatedAt are fixed
// at creation; every update refreshes UpdatedAt.
type Task struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	OwnerID    string    `json:"owner_id"`
	CreatedBy  string    `json:"created_by"`
	Priority   Priority  `json:"priority"`
	Status     Status    `json:"status"`
	DueDate    time.Time `json:"due_date"`
	Tags       []string  `json:"tags"`
	Subtasks   []Subtask `json:"subtasks"`
	Completed  bool      `json:"completed"`
	AssignedTo []string  `json:"assigned_to"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsAssignedTo reports whether the given member or user id is in the
// task's assignee set.
func (t *Task) IsAssignedTo(id string) bool {
	for _, a := range t.AssignedTo {
		if a == id {
			return true
		}
	}
	return false
}
