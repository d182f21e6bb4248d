package main

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanLimbu/tasks-api/internal"
)

type fakeIndexer struct {
	types []string
	err   error
}

func (f *fakeIndexer) Apply(_ context.Context, eventType string, _ internal.Task) error {
	f.types = append(f.types, eventType)

	return f.err
}

func encodeTask(t *testing.T, task internal.Task) []byte {
	t.Helper()

	var b bytes.Buffer
	require.NoError(t, gob.NewEncoder(&b).Encode(task))

	return b.Bytes()
}

func TestServer_Handle(t *testing.T) {
	t.Parallel()

	body := encodeTask(t, internal.Task{ID: 4, UserID: 1, Title: "water plants"})

	tests := []struct {
		name       string
		routingKey string
		body       []byte
		err        error
		ack        bool
		requeue    bool
	}{
		{"created", internal.EventTaskCreated, body, nil, true, false},
		{"deleted", internal.EventTaskDeleted, body, nil, true, false},
		{"invalid body", internal.EventTaskUpdated, []byte("nope"), nil, false, false},
		{"unknown routing key", "tasks.event.other", body, internal.NewErrorf(internal.ErrorCodeInvalidArgument, "unknown"), false, false},
		{"index failure", internal.EventTaskUpdated, body, errors.New("timeout"), false, true},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := &Server{logger: zap.NewNop(), task: &fakeIndexer{err: tt.err}}

			ack, requeue := srv.handle(context.Background(), tt.routingKey, tt.body)
			require.Equal(t, tt.ack, ack)
			require.Equal(t, tt.requeue, requeue)
		})
	}
}
