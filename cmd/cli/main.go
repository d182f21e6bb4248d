package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/sanLimbu/tasks-api/pkg/client"
)

func main() {
	var address, username, password, jaegerEndpoint string

	flag.StringVar(&address, "address", "http://localhost:9234", "Tasks API address")
	flag.StringVar(&username, "username", "", "Username")
	flag.StringVar(&password, "password", os.Getenv("TASKS_PASSWORD"), "Password, defaults to $TASKS_PASSWORD")
	flag.StringVar(&jaegerEndpoint, "jaeger", "", "Jaeger collector endpoint, e.g. http://localhost:14268/api/traces")
	flag.Parse()

	tp, err := newTracerProvider(jaegerEndpoint)
	if err != nil {
		log.Fatalf("Couldn't initialize tracing: %s", err)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = tp.Shutdown(ctx)
	}()

	if err := run(context.Background(), client.New(address), username, password); err != nil {
		log.Printf("Couldn't run: %s", err)
	}
}

func run(ctx context.Context, c *client.Client, username, password string) error {
	if err := c.Login(ctx, username, password); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	newPtrStr := func(s string) *string {
		return &s
	}

	deadline := time.Now().Add(24 * time.Hour).UTC()

	// Create
	task, err := c.CreateTask(ctx, client.TaskFields{
		Title:       newPtrStr("Sleep early"),
		Description: newPtrStr("Lights off by 10pm"),
		Priority:    newPtrStr("L"),
		Deadline:    &deadline,
	})
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	printTask("New Task", task)

	// Update
	completed := true

	if _, err = c.UpdateTask(ctx, task.ID, client.TaskFields{
		Priority:  newPtrStr("H"),
		Completed: &completed,
	}); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	// Read
	task, err = c.Task(ctx, task.ID)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	printTask("Updated Task", task)

	// Search
	tasks, err := c.SearchTasks(ctx, "sleep", "-priority")
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	fmt.Printf("Search \"sleep\": %d task(s)\n", len(tasks))

	// Delete
	if err := c.DeleteTask(ctx, task.ID); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	fmt.Printf("Deleted Task %d\n", task.ID)

	return nil
}

func printTask(header string, task client.Task) {
	fmt.Printf("%s\n\tID: %d\n", header, task.ID)
	fmt.Printf("\tTitle: %s\n", task.Title)
	fmt.Printf("\tDescription: %s\n", task.Description)
	fmt.Printf("\tPriority: %s\n", task.Priority)
	fmt.Printf("\tDeadline: %s\n", task.Deadline)
	fmt.Printf("\tCompleted: %t\n", task.Completed)
}

// newTracerProvider prints spans to stdout and, when an endpoint is set, exports them to Jaeger.
func newTracerProvider(jaegerEndpoint string) (*sdktrace.TracerProvider, error) {
	stdoutExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("stdouttrace.New: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(stdoutExporter),
	}

	if jaegerEndpoint != "" {
		jaegerExporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(jaegerEndpoint)))
		if err != nil {
			return nil, fmt.Errorf("jaeger.New: %w", err)
		}

		opts = append(opts, sdktrace.WithBatcher(jaegerExporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, nil
}
