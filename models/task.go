package models

// TaskStatus is not validated; new tasks default to StatusPending.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in progress"
	StatusCompleted  TaskStatus = "completed"
)

// Task.ProjectID is stored as given; nothing checks that the project exists.
type Task struct {
	ID          int        `json:"id" bson:"id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	ProjectID   int        `json:"projectId" bson:"projectId"`
	Status      TaskStatus `json:"status" bson:"status"`
}

func (t Task) RecordID() int { return t.ID }

// TaskPatch carries the supplied fields of a task request.
type TaskPatch struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	ProjectID   *int        `json:"projectId"`
	Status      *TaskStatus `json:"status"`
}

// NewRecord falls back to StatusPending when no status (or an empty one) is given.
func (p TaskPatch) NewRecord(id int) Task {
	task := p.ApplyTo(Task{ID: id})
	if task.Status == "" {
		task.Status = StatusPending
	}
	return task
}

func (p TaskPatch) ApplyTo(task Task) Task {
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.ProjectID != nil {
		task.ProjectID = *p.ProjectID
	}
	if p.Status != nil {
		task.Status = *p.Status
	}
	return task
}
