package handlers

import (
	"net/http"

	"actividad-clase/api-service/models"
	"actividad-clase/api-service/services"

	"github.com/gorilla/mux"
)

const StatusMessage = "API ActividadClase está corriendo"

var (
	PeopleMessages = Messages{
		RecordKey: "person",
		NotFound:  "Persona no encontrada",
		Created:   "Persona creada",
		Updated:   "Persona actualizada",
		Deleted:   "Persona eliminada",
	}
	ProjectMessages = Messages{
		RecordKey: "project",
		NotFound:  "Proyecto no encontrado",
		Created:   "Proyecto creado",
		Updated:   "Proyecto actualizado",
		Deleted:   "Proyecto eliminado",
	}
	TaskMessages = Messages{
		RecordKey: "task",
		NotFound:  "Tarea no encontrada",
		Created:   "Tarea creada",
		Updated:   "Tarea actualizada",
		Deleted:   "Tarea eliminada",
	}
)

// Services are the resource services the router mounts.
type Services struct {
	People   *services.PersonService
	Projects *services.ProjectService
	Tasks    *services.TaskService
}

// NewRouter wires the three resources under /api/v1 plus the status and
// health routes. CORS is applied by the caller around the returned router.
func NewRouter(svc Services) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID, LogRequests)

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusOK, StatusMessage)
	}).Methods(http.MethodGet)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ActividadClase API is running"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	NewResourceHandler[models.Person, models.PersonPatch](svc.People, PeopleMessages).Register(api, "/people")
	NewResourceHandler[models.Project, models.ProjectPatch](svc.Projects, ProjectMessages).Register(api, "/projects")
	NewResourceHandler[models.Task, models.TaskPatch](svc.Tasks, TaskMessages).Register(api, "/tasks")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Ruta no encontrada")
	})

	return r
}
