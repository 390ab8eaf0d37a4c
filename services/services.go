package services

import (
	"actividad-clase/api-service/events"
	"actividad-clase/api-service/models"
	"actividad-clase/api-service/storage"
)

const (
	PeopleCollection   = "people"
	ProjectsCollection = "projects"
	TasksCollection    = "tasks"
)

type (
	PersonService  = ResourceService[models.Person, models.PersonPatch]
	ProjectService = ResourceService[models.Project, models.ProjectPatch]
	TaskService    = ResourceService[models.Task, models.TaskPatch]
)

// NewPersonService stores people in the "people" collection.
func NewPersonService(backend *storage.Backend, publisher events.Publisher) *PersonService {
	return NewResourceService[models.Person, models.PersonPatch](storage.Named[models.Person](backend, PeopleCollection), publisher)
}

// NewProjectService stores projects in the "projects" collection.
func NewProjectService(backend *storage.Backend, publisher events.Publisher) *ProjectService {
	return NewResourceService[models.Project, models.ProjectPatch](storage.Named[models.Project](backend, ProjectsCollection), publisher)
}

// NewTaskService does not consult projects; Task.ProjectID is accepted as is.
func NewTaskService(backend *storage.Backend, publisher events.Publisher) *TaskService {
	return NewResourceService[models.Task, models.TaskPatch](storage.Named[models.Task](backend, TasksCollection), publisher)
}
