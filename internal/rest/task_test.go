package rest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/rest"
	"github.com/sanLimbu/tasks-api/internal/rest/resttesting"
)

const ownerID = int64(7)

func newTaskRouter(svc rest.TaskService) *chi.Mux {
	validator := &resttesting.FakeTokenValidator{}
	validator.ValidateAccessTokenReturns(ownerID, nil)

	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)

	r.Group(func(r chi.Router) {
		r.Use(rest.Authenticator(validator))
		rest.NewTaskHandler(svc).Register(r)
	})

	return r
}

func doRequest(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	return res
}

func decode(t *testing.T, res *httptest.ResponseRecorder, target interface{}) {
	t.Helper()

	require.NoError(t, json.NewDecoder(bytes.NewReader(res.Body.Bytes())).Decode(target), res.Body.String())
}

var (
	deadline  = time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	createdAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

func TestTasks_Create(t *testing.T) {
	t.Parallel()

	type output struct {
		status      int
		params      *internal.CreateParams
		validations []string
	}

	tests := []struct {
		name   string
		body   string
		setup  func(*resttesting.FakeTaskService)
		output output
	}{
		{
			"201",
			`{"id": 99, "user": 1, "created_at": "2000-01-01T00:00:00Z", "title": "  Pay rent ", "deadline": "2030-01-02T03:04:05Z"}`,
			func(s *resttesting.FakeTaskService) {
				s.CreateReturns(internal.Task{
					ID:        1,
					UserID:    ownerID,
					Title:     "Pay rent",
					Priority:  internal.PriorityMedium,
					Deadline:  deadline,
					CreatedAt: createdAt,
				}, nil)
			},
			output{
				status: http.StatusCreated,
				params: &internal.CreateParams{Title: "Pay rent", Priority: internal.PriorityMedium, Deadline: deadline},
			},
		},
		{
			"201: zone-less deadline is UTC, explicit priority and completed",
			`{"title": "Pay rent", "deadline": "2030-01-02T03:04:05", "priority": "H", "completed": true, "description": "x"}`,
			func(s *resttesting.FakeTaskService) {},
			output{
				status: http.StatusCreated,
				params: &internal.CreateParams{
					Title:       "Pay rent",
					Description: "x",
					Priority:    internal.PriorityHigh,
					Deadline:    deadline,
					Completed:   true,
				},
			},
		},
		{
			"400: invalid deadline",
			`{"title": "", "deadline": "tomorrow"}`,
			func(s *resttesting.FakeTaskService) {},
			output{status: http.StatusBadRequest, validations: []string{"deadline", "title"}},
		},
		{
			"400: type mismatch",
			`{"title": 10, "deadline": "2030-01-02T03:04:05Z"}`,
			func(s *resttesting.FakeTaskService) {},
			output{status: http.StatusBadRequest, validations: []string{"title"}},
		},
		{
			"400: malformed JSON",
			`{"title": `,
			func(s *resttesting.FakeTaskService) {},
			output{status: http.StatusBadRequest},
		},
		{
			"400: service validation",
			`{"title": "Pay rent", "deadline": "2030-01-02T03:04:05Z", "priority": "X"}`,
			func(s *resttesting.FakeTaskService) {
				s.CreateReturns(internal.Task{}, (internal.CreateParams{Title: "Pay rent", Priority: "X", Deadline: deadline}).Validate())
			},
			output{
				status:      http.StatusBadRequest,
				params:      &internal.CreateParams{Title: "Pay rent", Priority: "X", Deadline: deadline},
				validations: []string{"priority"},
			},
		},
		{
			"500",
			`{"title": "Pay rent", "deadline": "2030-01-02T03:04:05Z"}`,
			func(s *resttesting.FakeTaskService) {
				s.CreateReturns(internal.Task{}, internal.NewErrorf(internal.ErrorCodeUnknown, "connection refused"))
			},
			output{
				status: http.StatusInternalServerError,
				params: &internal.CreateParams{Title: "Pay rent", Priority: internal.PriorityMedium, Deadline: deadline},
			},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &resttesting.FakeTaskService{}
			tt.setup(svc)

			res := doRequest(newTaskRouter(svc), http.MethodPost, "/api/tasks/", tt.body)
			require.Equal(t, tt.output.status, res.Code, res.Body.String())

			if tt.output.params == nil {
				require.Zero(t, svc.CreateCallCount())
			} else {
				require.Equal(t, 1, svc.CreateCallCount())

				_, userID, params := svc.CreateArgsForCall(0)
				require.Equal(t, ownerID, userID)

				if diff := cmp.Diff(*tt.output.params, params); diff != "" {
					t.Errorf("params mismatch (-want +got):\n%s", diff)
				}
			}

			if tt.output.validations != nil {
				var resp struct {
					Validations map[string]string `json:"validations"`
				}

				decode(t, res, &resp)

				keys := make([]string, 0, len(resp.Validations))
				for k := range resp.Validations {
					keys = append(keys, k)
				}

				require.ElementsMatch(t, tt.output.validations, keys)
			}
		})
	}
}

func TestTasks_CreateResponse(t *testing.T) {
	t.Parallel()

	svc := &resttesting.FakeTaskService{}
	svc.CreateReturns(internal.Task{
		ID:          1,
		UserID:      ownerID,
		Title:       "Pay rent",
		Description: "before the 5th",
		Priority:    internal.PriorityLow,
		Deadline:    deadline,
		CreatedAt:   createdAt,
	}, nil)

	res := doRequest(newTaskRouter(svc), http.MethodPost, "/api/tasks", `{"title": "Pay rent", "deadline": "2030-01-02T03:04:05Z"}`)
	require.Equal(t, http.StatusCreated, res.Code)

	var actual map[string]interface{}
	decode(t, res, &actual)

	require.Equal(t, map[string]interface{}{
		"id":          float64(1),
		"title":       "Pay rent",
		"description": "before the 5th",
		"deadline":    "2030-01-02T03:04:05Z",
		"priority":    "L",
		"completed":   false,
		"created_at":  "2024-01-01T00:00:00Z",
		"user":        float64(ownerID),
	}, actual)
}

func TestTasks_Task(t *testing.T) {
	t.Parallel()

	t.Run("200", func(t *testing.T) {
		t.Parallel()

		svc := &resttesting.FakeTaskService{}
		svc.TaskReturns(internal.Task{ID: 3, UserID: ownerID, Title: "x", Priority: internal.PriorityMedium, Deadline: deadline}, nil)

		res := doRequest(newTaskRouter(svc), http.MethodGet, "/api/tasks/3/", "")
		require.Equal(t, http.StatusOK, res.Code)

		_, userID, id := svc.TaskArgsForCall(0)
		require.Equal(t, ownerID, userID)
		require.Equal(t, int64(3), id)

		var task rest.Task
		decode(t, res, &task)
		require.Equal(t, int64(3), task.ID)
	})

	t.Run("404: another owner", func(t *testing.T) {
		t.Parallel()

		svc := &resttesting.FakeTaskService{}
		svc.TaskReturns(internal.Task{}, internal.NewErrorf(internal.ErrorCodeNotFound, "task not found"))

		res := doRequest(newTaskRouter(svc), http.MethodGet, "/api/tasks/3", "")
		require.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("404: non-numeric id", func(t *testing.T) {
		t.Parallel()

		svc := &resttesting.FakeTaskService{}

		res := doRequest(newTaskRouter(svc), http.MethodGet, "/api/tasks/abc/", "")
		require.Equal(t, http.StatusNotFound, res.Code)
		require.Zero(t, svc.TaskCallCount())
	})
}

func TestTasks_Search(t *testing.T) {
	t.Parallel()

	svc := &resttesting.FakeTaskService{}
	svc.ByReturns([]internal.Task{{ID: 2}, {ID: 1}}, nil)

	res := doRequest(newTaskRouter(svc), http.MethodGet, "/api/tasks/?search=Rent&ordering=-deadline,bogus,priority", "")
	require.Equal(t, http.StatusOK, res.Code)

	_, userID, params := svc.ByArgsForCall(0)
	require.Equal(t, ownerID, userID)
	require.Equal(t, internal.SearchParams{
		Search: "Rent",
		Ordering: []internal.Ordering{
			{Field: internal.OrderFieldDeadline, Descending: true},
			{Field: internal.OrderFieldPriority},
		},
	}, params)

	var tasks []rest.Task
	decode(t, res, &tasks)
	require.Len(t, tasks, 2)
	require.Equal(t, int64(2), tasks[0].ID)

	t.Run("empty list is an array", func(t *testing.T) {
		t.Parallel()

		svc := &resttesting.FakeTaskService{}
		svc.ByReturns(nil, nil)

		res := doRequest(newTaskRouter(svc), http.MethodGet, "/api/tasks", "")
		require.Equal(t, http.StatusOK, res.Code)
		require.JSONEq(t, "[]", res.Body.String())

		_, _, params := svc.ByArgsForCall(0)
		require.Equal(t, internal.SearchParams{}, params)
	})
}

func TestTasks_Update(t *testing.T) {
	t.Parallel()

	t.Run("PATCH completed only", func(t *testing.T) {
		t.Parallel()

		svc := &resttesting.FakeTaskService{}
		svc.UpdateReturns(internal.Task{ID: 3, UserID: ownerID, Completed: true}, nil)

		res := doRequest(newTaskRouter(svc), http.MethodPatch, "/api/tasks/3/", `{"completed": true}`)
		require.Equal(t, http.StatusOK, res.Code)

		completed := true

		_, userID, id, params := svc.UpdateArgsForCall(0)
		require.Equal(t, ownerID, userID)
		require.Equal(t, int64(3), id)
		require.Equal(t, internal.UpdateParams{Completed: &completed}, params)
	})

	t.Run("PUT requires title and deadline", func(t *testing.T) {
		t.Parallel()

		svc := &resttesting.FakeTaskService{}

		res := doRequest(newTaskRouter(svc), http.MethodPut, "/api/tasks/3/", `{"completed": true}`)
		require.Equal(t, http.StatusBadRequest, res.Code)
		require.Zero(t, svc.UpdateCallCount())

		var resp struct {
			Validations map[string]string `json:"validations"`
		}

		decode(t, res, &resp)
		require.Contains(t, resp.Validations, "title")
		require.Contains(t, resp.Validations, "deadline")
	})

	t.Run("PUT", func(t *testing.T) {
		t.Parallel()

		svc := &resttesting.FakeTaskService{}

		res := doRequest(newTaskRouter(svc), http.MethodPut, "/api/tasks/3", `{"title": "new", "deadline": "2030-01-02T05:04:05+02:00", "user": 1}`)
		require.Equal(t, http.StatusOK, res.Code)

		_, _, _, params := svc.UpdateArgsForCall(0)
		require.Equal(t, "new", *params.Title)
		require.Equal(t, deadline, *params.Deadline)
		require.Nil(t, params.Priority)
		require.Nil(t, params.Completed)
	})

	t.Run("404", func(t *testing.T) {
		t.Parallel()

		svc := &resttesting.FakeTaskService{}
		svc.UpdateReturns(internal.Task{}, internal.NewErrorf(internal.ErrorCodeNotFound, "task not found"))

		res := doRequest(newTaskRouter(svc), http.MethodPatch, "/api/tasks/3", `{"title": "hijack"}`)
		require.Equal(t, http.StatusNotFound, res.Code)
	})
}

func TestTasks_Delete(t *testing.T) {
	t.Parallel()

	svc := &resttesting.FakeTaskService{}
	svc.DeleteReturnsOnCall(1, internal.NewErrorf(internal.ErrorCodeNotFound, "task not found"))

	router := newTaskRouter(svc)

	res := doRequest(router, http.MethodDelete, "/api/tasks/3/", "")
	require.Equal(t, http.StatusNoContent, res.Code)
	require.Empty(t, res.Body.String())

	res = doRequest(router, http.MethodDelete, "/api/tasks/3/", "")
	require.Equal(t, http.StatusNotFound, res.Code)

	_, userID, id := svc.DeleteArgsForCall(1)
	require.Equal(t, ownerID, userID)
	require.Equal(t, int64(3), id)
}
