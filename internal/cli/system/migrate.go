package system

import (
	"fmt"
	"io/fs"

	"rollcall/internal/cli"
	"rollcall/internal/errors"
	"rollcall/internal/migration"
	"rollcall/internal/storage/sqlite"
	"rollcall/migrations"
)

type MigrateCmd struct {
	Status bool `help:"Show the schema version without applying anything."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return errors.Format("failed to load database", err)
	}
	defer ctx.Store.Close()

	// PostgreSQL schemas migrate during Init and Load.
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("the migrate command only supports SQLite storage")
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return errors.Format("failed to access migrations", err)
	}
	runner := migration.NewRunner(db, subFS)

	if c.Status {
		current, latest, err := runner.Status()
		if err != nil {
			return errors.Format("failed to read schema version", err)
		}
		fmt.Printf("Schema version: %d of %d\n", current, latest)
		if current < latest {
			fmt.Printf("%d migration(s) pending. Run 'rollcall system migrate' to apply.\n", latest-current)
		} else {
			fmt.Println("Database is up to date.")
		}
		return nil
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return errors.Format("migration failed", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
