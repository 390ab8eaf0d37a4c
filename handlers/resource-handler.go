package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"actividad-clase/api-service/logging"
	"actividad-clase/api-service/services"
	"actividad-clase/api-service/storage"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Messages are the client-facing texts of one resource. RecordKey names the
// record inside create and update responses.
type Messages struct {
	RecordKey string
	NotFound  string
	Created   string
	Updated   string
	Deleted   string
}

// ResourceHandler exposes one ResourceService as REST routes.
type ResourceHandler[T services.Record, P services.Patch[T]] struct {
	Service  *services.ResourceService[T, P]
	Messages Messages
}

// NewResourceHandler serves service over HTTP using messages for responses.
func NewResourceHandler[T services.Record, P services.Patch[T]](service *services.ResourceService[T, P], messages Messages) *ResourceHandler[T, P] {
	return &ResourceHandler[T, P]{Service: service, Messages: messages}
}

// Register mounts the five CRUD routes under prefix. Every path also matches
// with a trailing slash.
func (h *ResourceHandler[T, P]) Register(r *mux.Router, prefix string) {
	sub := r.PathPrefix(prefix).Subrouter()
	for _, root := range []string{"", "/"} {
		sub.HandleFunc(root, h.List).Methods(http.MethodGet)
		sub.HandleFunc(root, h.Create).Methods(http.MethodPost)
	}
	for _, item := range []string{"/{id}", "/{id}/"} {
		sub.HandleFunc(item, h.Get).Methods(http.MethodGet)
		sub.HandleFunc(item, h.Update).Methods(http.MethodPut)
		sub.HandleFunc(item, h.Delete).Methods(http.MethodDelete)
	}
}

// List answers with the whole collection as a JSON array.
func (h *ResourceHandler[T, P]) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Get answers 404 with the not-found message for unknown or non-numeric ids.
func (h *ResourceHandler[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		h.notFound(w)
		return
	}

	record, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Create answers 201 with the message and the stored record.
func (h *ResourceHandler[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	var fields P
	if err := decodeBody(r, &fields); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	record, err := h.Service.Create(r.Context(), fields)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	logging.Logger.Infof("Event ID: RECORD_CREATED, Description: Created %s/%d", h.Service.Name(), record.RecordID())
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":            h.Messages.Created,
		h.Messages.RecordKey: record,
	})
}

func (h *ResourceHandler[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		h.notFound(w)
		return
	}

	var fields P
	if err := decodeBody(r, &fields); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	record, err := h.Service.Update(r.Context(), id, fields)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	logging.Logger.Infof("Event ID: RECORD_UPDATED, Description: Updated %s/%d", h.Service.Name(), id)
	writeJSON(w, http.StatusOK, map[string]any{
		"message":            h.Messages.Updated,
		h.Messages.RecordKey: record,
	})
}

func (h *ResourceHandler[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		h.notFound(w)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	logging.Logger.Infof("Event ID: RECORD_DELETED, Description: Deleted %s/%d", h.Service.Name(), id)
	writeMessage(w, http.StatusOK, h.Messages.Deleted)
}

func (h *ResourceHandler[T, P]) notFound(w http.ResponseWriter) {
	writeMessage(w, http.StatusNotFound, h.Messages.NotFound)
}

func (h *ResourceHandler[T, P]) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		h.notFound(w)
	case errors.Is(err, storage.ErrUnavailable):
		requestLogger(r).Warnf("Event ID: STORAGE_UNAVAILABLE, Description: %s %s: %v", r.Method, r.URL.Path, err)
		writeMessage(w, http.StatusServiceUnavailable, "Servicio no disponible")
	default:
		requestLogger(r).Errorf("Event ID: STORAGE_FAILED, Description: %s %s: %v", r.Method, r.URL.Path, err)
		writeMessage(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}

// parseID reports false for anything that is not an integer; no record can match it.
func parseID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil
}

// decodeBody leaves dst untouched when the body is empty.
func decodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.Errorf("Event ID: RESPONSE_ENCODE_FAILED, Description: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func requestLogger(r *http.Request) *logrus.Entry {
	return logging.Logger.WithField("requestId", RequestIDFrom(r.Context()))
}
