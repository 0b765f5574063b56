package system

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"rollcall/internal/cli"
	"rollcall/internal/config"
	"rollcall/internal/errors"
	"rollcall/internal/keyring"
	"rollcall/internal/migration"
	"rollcall/internal/storage/sqlite"
	"rollcall/internal/utils"
	"rollcall/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: Config directory and file
	if err := checkConfig(); err != nil {
		fmt.Printf("❌ Config file: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Config file: OK\n")
	}

	// Check 2: Keyring availability (warning only, SQLite setups don't need it)
	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: UNAVAILABLE (PostgreSQL credentials cannot be stored)\n")
	}

	// Check 3: Database reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 4: Schema version (only if DB is reachable)
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 5: Clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 6: Attendance service round-trip
	if err := checkService(ctx); err != nil {
		fmt.Printf("⚠ Attendance service: UNREACHABLE\n")
		fmt.Printf("   %v\n", err)
		fmt.Printf("   Start one with 'rollcall serve' for live board and status commands.\n")
	} else {
		fmt.Printf("✓ Attendance service: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkConfig() error {
	dir, err := config.Dir()
	if err != nil {
		return errors.Format("failed to locate config directory", err)
	}

	if _, err := config.Load(); err != nil {
		return errors.Formatf(err, "failed to load config from %s", dir)
	}
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return errors.Format("failed to load database", err)
	}

	// For SQLite, also try a simple query
	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return errors.Format("failed to query database", err)
		}
	}

	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// PostgreSQL validates its schema version on load
		return nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return errors.Format("failed to access migrations", err)
	}

	current, latest, err := migration.NewRunner(db, subFS).Status()
	if err != nil {
		return errors.Format("failed to read schema version", err)
	}

	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'rollcall system migrate')", current, latest)
	}

	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if _, err := utils.LoadLocation(ctx.Config.Timezone); err != nil {
		return errors.Formatf(err, "configured timezone %q does not resolve", ctx.Config.Timezone)
	}

	return nil
}

func checkService(ctx *cli.Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}

	checkCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	info, err := client.Health(checkCtx)
	if err != nil {
		return errors.Format("health check failed", err)
	}
	if info.Status != "ok" {
		return fmt.Errorf("service reports status %q", info.Status)
	}

	return nil
}
