package postgresql

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sanLimbu/tasks-api/internal"
)

func TestSearchQuery(t *testing.T) {
	t.Parallel()

	const columns = "SELECT id, user_id, title, description, priority, deadline, created_at, completed FROM tasks WHERE user_id = $1"

	tests := []struct {
		name      string
		input     internal.SearchParams
		wantQuery string
		wantArgs  []interface{}
	}{
		{
			"OK: default ordering",
			internal.SearchParams{},
			columns + " ORDER BY created_at DESC, id DESC",
			[]interface{}{int64(10)},
		},
		{
			"OK: search and deadline ascending",
			internal.SearchParams{
				Search:   "Rent",
				Ordering: internal.ParseOrdering("deadline"),
			},
			columns + " AND (title ILIKE $2 OR description ILIKE $2) ORDER BY deadline ASC, created_at DESC, id DESC",
			[]interface{}{int64(10), "%Rent%"},
		},
		{
			"OK: multiple terms",
			internal.SearchParams{
				Ordering: internal.ParseOrdering("-priority,created_at"),
			},
			columns + " ORDER BY priority DESC, created_at ASC, id DESC",
			[]interface{}{int64(10)},
		},
		{
			"OK: wildcards are escaped",
			internal.SearchParams{
				Search: `50%_off\`,
			},
			columns + " AND (title ILIKE $2 OR description ILIKE $2) ORDER BY created_at DESC, id DESC",
			[]interface{}{int64(10), `%50\%\_off\\%`},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			query, args := searchQuery(10, tt.input)

			if query != tt.wantQuery {
				t.Fatalf("expected query\n%s\ngot\n%s", tt.wantQuery, query)
			}

			if !cmp.Equal(tt.wantArgs, args) {
				t.Fatalf("expected args do not match: %s", cmp.Diff(tt.wantArgs, args))
			}
		})
	}
}
