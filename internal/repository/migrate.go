package repository

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"shopsample/pkg/logger"
	"shopsample/pkg/storage/postgres"
	"shopsample/pkg/storage/postgres/transaction"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every embedded migration in file name order inside one
// transaction. Migrations are written to be idempotent.
func Migrate(ctx context.Context, txManager transaction.Manager, log logger.Logger) error {
	const op = "repository.Migrate"

	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("%s: list migrations: %w", op, err)
	}
	sort.Strings(names)

	err = txManager.ExecuteInTransaction(ctx, op, func(tx postgres.Querier) error {
		for _, name := range names {
			script, err := migrations.ReadFile(name)
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}
			if _, err = tx.Exec(ctx, string(script)); err != nil {
				return fmt.Errorf("apply %s: %w", name, err)
			}
			log.LogAttrs(ctx, logger.InfoLevel, "migration applied",
				logger.String("op", op),
				logger.String("file", name),
			)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
