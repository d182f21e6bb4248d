package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/sanLimbu/tasks-api/cmd/internal"
	internaldomain "github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/auth"
	"github.com/sanLimbu/tasks-api/internal/service"
)

func main() {
	var env, username, email, password string

	flag.StringVar(&env, "env", "", "Environment Variables filename")
	flag.StringVar(&username, "username", "", "Username used for logging in")
	flag.StringVar(&email, "email", "", "Address receiving the deadline alerts")
	flag.StringVar(&password, "password", "", "Password, defaults to $TASKS_PASSWORD")
	flag.Parse()

	if password == "" {
		password = os.Getenv("TASKS_PASSWORD")
	}

	if err := run(env, username, email, password); err != nil {
		log.Fatalf("Couldn't create user: %s", err)
	}
}

func run(env, username, email, password string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "zap.NewProduction")
	}

	defer func() { _ = logger.Sync() }()

	cfg, err := internal.NewConfig(env)
	if err != nil {
		return internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewConfig")
	}

	ctx := context.Background()

	store, err := internal.NewStore(ctx, cfg.Database)
	if err != nil {
		return internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewStore")
	}
	defer store.Close()

	// Tokens are never issued here.
	svc := service.NewAuth(store.User, auth.NewPasswordHasher(auth.DefaultBcryptCost), nil)

	user, err := svc.CreateUser(ctx, username, email, password)
	if err != nil {
		return fmt.Errorf("svc.CreateUser: %w", err)
	}

	logger.Info("user created", zap.Int64("id", user.ID), zap.String("username", user.Username))

	return nil
}
