//go:build tools

package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/jackc/tern/v2"
	_ "github.com/maxbrunsfeld/counterfeiter/v6"
	_ "github.com/sqlc-dev/sqlc/cmd/sqlc"
)
