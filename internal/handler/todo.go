package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/todolist/todolist-go/internal/middleware"
	"github.com/todolist/todolist-go/internal/model"
	"github.com/todolist/todolist-go/internal/service"
)

// TodoHandler handles HTTP requests for task operations.
type TodoHandler struct {
	service *service.TaskService
	log     *zap.Logger
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TaskService, log *zap.Logger) *TodoHandler {
	return &TodoHandler{service: svc, log: log}
}

// HandleList handles GET /api/todo requests. Optional query parameters:
// userId (must be the caller), status (all|complete|incomplete) and q.
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	query := r.URL.Query()
	if owner := query.Get("userId"); owner != "" && owner != userID {
		writeError(w, r, h.log, service.ErrForbidden)
		return
	}

	status, err := service.ParseStatusFilter(query.Get("status"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	tasks, err := h.service.List(r.Context(), userID, service.ListOptions{Status: status, Query: query.Get("q")})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp := make([]model.TaskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = model.NewTaskResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/todo/{id} requests.
func (h *TodoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := h.ids(w, r)
	if !ok {
		return
	}

	task, err := h.service.Get(r.Context(), userID, taskID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, model.NewTaskResponse(task))
}

// HandleCreate handles POST /api/todo requests.
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.NewTaskResponse(task))
}

// HandleUpdate handles PUT /api/todo/{id} requests.
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := h.ids(w, r)
	if !ok {
		return
	}

	var req model.UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := h.service.Update(r.Context(), userID, taskID, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, model.NewTaskResponse(task))
}

// HandleSetStatus handles PATCH /api/todo/{id}/status requests.
func (h *TodoHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := h.ids(w, r)
	if !ok {
		return
	}

	var req model.StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.IsCompleted == nil {
		writeJSON(w, http.StatusBadRequest, model.MessageResponse{
			Message: "validation failed",
			Errors:  map[string]string{"isCompleted": "isCompleted is required"},
		})
		return
	}

	task, err := h.service.SetStatus(r.Context(), userID, taskID, *req.IsCompleted)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, model.NewTaskResponse(task))
}

// HandleDelete handles DELETE /api/todo/{id} requests.
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := h.ids(w, r)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), userID, taskID); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Task deleted successfully"})
}

// ids returns the caller and the {id} path parameter.
func (h *TodoHandler) ids(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return "", "", false
	}

	taskID := chi.URLParam(r, "id")
	if taskID == "" || len(taskID) > 64 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid task id"))
		return "", "", false
	}
	return userID, taskID, true
}
