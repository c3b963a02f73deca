//go:build integration

package testutil

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/Gunvolt24/flowers/internal/repo/postgres"
)

// ApplyMigrationsGoose — применяет вшитые миграции к тестовой базе (тот же путь, что и на старте сервиса).
func ApplyMigrationsGoose(dsn string) error {
	goose.SetLogger(log.New(os.Stdout, "", 0))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return postgres.Migrate(ctx, dsn)
}
