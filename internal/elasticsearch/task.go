// Package elasticsearch implements the Task search backend and the index kept in sync by the indexers.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	esv7 "github.com/elastic/go-elasticsearch/v7"
	esv7api "github.com/elastic/go-elasticsearch/v7/esapi"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanLimbu/tasks-api/internal"
)

const (
	otelName = "github.com/sanLimbu/tasks-api/internal/elasticsearch"

	// maxResults is the default index.max_result_window.
	maxResults = 10000
)

// Task represents the repository used for searching Task records.
type Task struct {
	client *esv7.Client
	index  string
}

type indexedTask struct {
	ID           int64             `json:"id"`
	UserID       int64             `json:"user_id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Priority     internal.Priority `json:"priority"`
	PriorityRank int               `json:"priority_rank"`
	Deadline     time.Time         `json:"deadline"`
	CreatedAt    time.Time         `json:"created_at"`
	Completed    bool              `json:"completed"`
}

// mapping uses wildcard fields so case insensitive wildcard queries match substrings of values of any
// length.
const mapping = `{
  "mappings": {
    "properties": {
      "id":            {"type": "long"},
      "user_id":       {"type": "long"},
      "title":         {"type": "wildcard"},
      "description":   {"type": "wildcard"},
      "priority":      {"type": "keyword"},
      "priority_rank": {"type": "integer"},
      "deadline":      {"type": "date"},
      "created_at":    {"type": "date"},
      "completed":     {"type": "boolean"}
    }
  }
}`

// NewTask instantiates the Task repository.
func NewTask(client *esv7.Client) *Task {
	return &Task{
		client: client,
		index:  "tasks",
	}
}

// EnsureIndex creates the index with its mapping when missing.
func (t *Task) EnsureIndex(ctx context.Context) error {
	defer newOTELSpan(ctx, "Task.EnsureIndex").End()

	exists, err := esv7api.IndicesExistsRequest{Index: []string{t.index}}.Do(ctx, t.client)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "IndicesExistsRequest.Do")
	}

	drain(exists.Body)

	if exists.StatusCode == http.StatusOK {
		return nil
	}

	resp, err := esv7api.IndicesCreateRequest{
		Index: t.index,
		Body:  strings.NewReader(mapping),
	}.Do(ctx, t.client)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "IndicesCreateRequest.Do")
	}
	defer drain(resp.Body)

	if resp.IsError() {
		return internal.NewErrorf(internal.ErrorCodeUnknown, "IndicesCreateRequest.Do %d", resp.StatusCode)
	}

	return nil
}

// Index creates or updates a task in the index. A document rejected by Elasticsearch returns an
// InvalidArgument error, retrying it would fail the same way.
func (t *Task) Index(ctx context.Context, task internal.Task) error {
	defer newOTELSpan(ctx, "Task.Index").End()

	body := indexedTask{
		ID:           task.ID,
		UserID:       task.UserID,
		Title:        task.Title,
		Description:  task.Description,
		Priority:     task.Priority,
		PriorityRank: task.Priority.Rank(),
		Deadline:     task.Deadline.UTC(),
		CreatedAt:    task.CreatedAt.UTC(),
		Completed:    task.Completed,
	}

	var buf bytes.Buffer

	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "json.NewEncoder.Encode")
	}

	req := esv7api.IndexRequest{
		Index:      t.index,
		Body:       &buf,
		DocumentID: documentID(task.ID),
		Refresh:    "true",
	}

	resp, err := req.Do(ctx, t.client)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "IndexRequest.Do")
	}
	defer drain(resp.Body)

	if resp.IsError() {
		code := internal.ErrorCodeUnknown
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			code = internal.ErrorCodeInvalidArgument
		}

		return internal.NewErrorf(code, "IndexRequest.Do %d", resp.StatusCode)
	}

	return nil
}

// Delete removes a task from the index, deleting a missing document is not an error.
func (t *Task) Delete(ctx context.Context, id int64) error {
	defer newOTELSpan(ctx, "Task.Delete").End()

	req := esv7api.DeleteRequest{
		Index:      t.index,
		DocumentID: documentID(id),
	}

	resp, err := req.Do(ctx, t.client)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "DeleteRequest.Do")
	}
	defer drain(resp.Body)

	if resp.IsError() && resp.StatusCode != http.StatusNotFound {
		return internal.NewErrorf(internal.ErrorCodeUnknown, "DeleteRequest.Do %d", resp.StatusCode)
	}

	return nil
}

// Apply updates the index according to an event published when a task changed. Unknown event types
// and rejected documents return an InvalidArgument error.
func (t *Task) Apply(ctx context.Context, eventType string, task internal.Task) error {
	switch eventType {
	case internal.EventTaskCreated, internal.EventTaskUpdated:
		return t.Index(ctx, task)
	case internal.EventTaskDeleted:
		return t.Delete(ctx, task.ID)
	}

	return internal.NewErrorf(internal.ErrorCodeInvalidArgument, "unknown event type %q", eventType)
}

// Search returns the tasks owned by userID matching params.
func (t *Task) Search(ctx context.Context, userID int64, params internal.SearchParams) ([]internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Search").End()

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchQuery(userID, params)); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "json.NewEncoder.Encode")
	}

	req := esv7api.SearchRequest{
		Index: []string{t.index},
		Body:  &buf,
	}

	resp, err := req.Do(ctx, t.client)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "SearchRequest.Do")
	}
	defer drain(resp.Body)

	if resp.IsError() {
		return nil, internal.NewErrorf(internal.ErrorCodeUnknown, "SearchRequest.Do %d", resp.StatusCode)
	}

	var hits struct {
		Hits struct {
			Hits []struct {
				Source indexedTask `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "json.NewDecoder.Decode")
	}

	res := make([]internal.Task, len(hits.Hits.Hits))
	for i, hit := range hits.Hits.Hits {
		res[i] = internal.Task{
			ID:          hit.Source.ID,
			UserID:      hit.Source.UserID,
			Title:       hit.Source.Title,
			Description: hit.Source.Description,
			Priority:    hit.Source.Priority,
			Deadline:    hit.Source.Deadline.UTC(),
			CreatedAt:   hit.Source.CreatedAt.UTC(),
			Completed:   hit.Source.Completed,
		}
	}

	return res, nil
}

func searchQuery(userID int64, params internal.SearchParams) map[string]interface{} {
	filter := []interface{}{
		map[string]interface{}{
			"term": map[string]interface{}{"user_id": userID},
		},
	}

	boolQuery := map[string]interface{}{"filter": filter}

	if params.Search != "" {
		pattern := "*" + escapeWildcard(params.Search) + "*"

		should := make([]interface{}, 0, 2)
		for _, field := range []string{"title", "description"} {
			should = append(should, map[string]interface{}{
				"wildcard": map[string]interface{}{
					field: map[string]interface{}{
						"value":            pattern,
						"case_insensitive": true,
					},
				},
			})
		}

		boolQuery["should"] = should
		boolQuery["minimum_should_match"] = 1
	}

	var (
		sort      []interface{}
		createdAt bool
	)

	for _, o := range params.OrderingOrDefault() {
		var field string

		switch o.Field {
		case internal.OrderFieldDeadline:
			field = "deadline"
		case internal.OrderFieldPriority:
			field = "priority_rank"
		case internal.OrderFieldCreatedAt:
			field, createdAt = "created_at", true
		default:
			continue
		}

		sort = append(sort, map[string]interface{}{field: direction(o.Descending)})
	}

	if !createdAt {
		sort = append(sort, map[string]interface{}{"created_at": "desc"})
	}

	sort = append(sort, map[string]interface{}{"id": "desc"})

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"sort":  sort,
		"size":  maxResults,
	}
}

func direction(desc bool) string {
	if desc {
		return "desc"
	}

	return "asc"
}

// escapeWildcard escapes the wildcard query operators so the term is matched literally.
func escapeWildcard(s string) string {
	return strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`).Replace(s)
}

func documentID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func drain(body io.ReadCloser) {
	if body == nil {
		return
	}

	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

func newOTELSpan(ctx context.Context, name string) trace.Span {
	_, span := otel.Tracer(otelName).Start(ctx, name)

	span.SetAttributes(semconv.DBSystemElasticsearch)

	return span
}
