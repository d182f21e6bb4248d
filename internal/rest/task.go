package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/sanLimbu/tasks-api/internal"
)

//go:generate counterfeiter -o resttesting/task_service.gen.go . TaskService

// TaskService defines the application service in charge of the authenticated user's Tasks.
type TaskService interface {
	By(ctx context.Context, userID int64, params internal.SearchParams) ([]internal.Task, error)
	Create(ctx context.Context, userID int64, params internal.CreateParams) (internal.Task, error)
	Delete(ctx context.Context, userID, id int64) error
	Task(ctx context.Context, userID, id int64) (internal.Task, error)
	Update(ctx context.Context, userID, id int64, params internal.UpdateParams) (internal.Task, error)
}

// TaskHandler serves the owner-scoped task endpoints.
type TaskHandler struct {
	svc TaskService
}

// NewTaskHandler returns a TaskHandler backed by svc.
func NewTaskHandler(svc TaskService) *TaskHandler {
	return &TaskHandler{
		svc: svc,
	}
}

// Register connects the handlers to the router, callers are expected to install Authenticator first.
func (t *TaskHandler) Register(r chi.Router) {
	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", t.search)
		r.Post("/", t.create)
		r.Get("/{id}", t.task)
		r.Put("/{id}", t.update)
		r.Patch("/{id}", t.patch)
		r.Delete("/{id}", t.delete)
	})
}

func (t *TaskHandler) search(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		renderErrorResponse(w, r, "authentication credentials were not provided", errNotAuthenticated)
		return
	}

	var search, ordering *string

	query := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "search", query, &search); err != nil {
		renderErrorResponse(w, r, "invalid request", internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "search"))
		return
	}

	if err := runtime.BindQueryParameter("form", true, false, "ordering", query, &ordering); err != nil {
		renderErrorResponse(w, r, "invalid request", internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "ordering"))
		return
	}

	var params internal.SearchParams

	if search != nil {
		params.Search = *search
	}

	if ordering != nil {
		params.Ordering = internal.ParseOrdering(*ordering)
	}

	tasks, err := t.svc.By(r.Context(), userID, params)
	if err != nil {
		renderErrorResponse(w, r, "search failed", err)
		return
	}

	res := make([]Task, len(tasks))
	for i, task := range tasks {
		res[i] = NewTask(task)
	}

	renderResponse(w, r, res, http.StatusOK)
}

func (t *TaskHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		renderErrorResponse(w, r, "authentication credentials were not provided", errNotAuthenticated)
		return
	}

	req, err := decodeTaskRequest(r.Body)
	if err != nil {
		renderErrorResponse(w, r, "invalid request", err)
		return
	}

	params, err := req.CreateParams()
	if err != nil {
		renderErrorResponse(w, r, "invalid request", err)
		return
	}

	task, err := t.svc.Create(r.Context(), userID, params)
	if err != nil {
		renderErrorResponse(w, r, "create failed", err)
		return
	}

	renderResponse(w, r, NewTask(task), http.StatusCreated)
}

func (t *TaskHandler) task(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := t.identify(w, r)
	if !ok {
		return
	}

	task, err := t.svc.Task(r.Context(), userID, id)
	if err != nil {
		renderErrorResponse(w, r, "find failed", err)
		return
	}

	renderResponse(w, r, NewTask(task), http.StatusOK)
}

func (t *TaskHandler) update(w http.ResponseWriter, r *http.Request) {
	t.save(w, r, true)
}

func (t *TaskHandler) patch(w http.ResponseWriter, r *http.Request) {
	t.save(w, r, false)
}

func (t *TaskHandler) save(w http.ResponseWriter, r *http.Request, full bool) {
	userID, id, ok := t.identify(w, r)
	if !ok {
		return
	}

	req, err := decodeTaskRequest(r.Body)
	if err != nil {
		renderErrorResponse(w, r, "invalid request", err)
		return
	}

	params, err := req.UpdateParams(full)
	if err != nil {
		renderErrorResponse(w, r, "invalid request", err)
		return
	}

	task, err := t.svc.Update(r.Context(), userID, id, params)
	if err != nil {
		renderErrorResponse(w, r, "update failed", err)
		return
	}

	renderResponse(w, r, NewTask(task), http.StatusOK)
}

func (t *TaskHandler) delete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := t.identify(w, r)
	if !ok {
		return
	}

	if err := t.svc.Delete(r.Context(), userID, id); err != nil {
		renderErrorResponse(w, r, "delete failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// identify returns the authenticated user and the task id. Ids that aren't numbers can't exist, those
// requests get the same response as a missing task.
func (t *TaskHandler) identify(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		renderErrorResponse(w, r, "authentication credentials were not provided", errNotAuthenticated)
		return 0, 0, false
	}

	var id int64

	if err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, chi.URLParam(r, "id"), &id); err != nil {
		renderErrorResponse(w, r, "not found", internal.WrapErrorf(err, internal.ErrorCodeNotFound, "id"))
		return 0, 0, false
	}

	return userID, id, true
}
