package system

import (
	"path/filepath"
	"testing"

	"rollcall/internal/cli"
	"rollcall/internal/config"
	"rollcall/internal/storage/sqlite"
)

func setupTestDoctorDB(t *testing.T) (*cli.Context, *sqlite.Store) {
	tempDir := t.TempDir()
	config.SetDirOverride(tempDir)
	t.Cleanup(func() { config.SetDirOverride("") })

	store := sqlite.NewStore(filepath.Join(tempDir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := &cli.Context{
		Store:  store,
		Config: config.Default(),
	}

	return ctx, store
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, _ := setupTestDoctorDB(t)

	cmd := &DoctorCmd{}
	err := cmd.Run(ctx)

	// An unreachable attendance service is a warning, not a failure
	if err != nil {
		t.Errorf("doctor command failed on healthy database: %v", err)
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, store := setupTestDoctorDB(t)

	db := store.GetDB()
	if db == nil {
		t.Fatal("database connection is nil")
	}

	// Set an impossible future schema version
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (999)"); err != nil {
		t.Fatalf("failed to insert corrupted schema version: %v", err)
	}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("doctor command should fail with corrupted schema")
	}
}

func TestCheckSchemaVersion_Incomplete(t *testing.T) {
	ctx, store := setupTestDoctorDB(t)

	db := store.GetDB()

	// An empty schema_version table reads as version 0, behind the
	// embedded migrations
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}

	if err := checkSchemaVersion(ctx); err == nil {
		t.Error("checkSchemaVersion should fail with incomplete migrations")
	}
}

func TestCheckClockTimezone(t *testing.T) {
	ctx, _ := setupTestDoctorDB(t)

	if err := checkClockTimezone(ctx); err != nil {
		t.Errorf("clock/timezone check failed: %v", err)
	}

	ctx.Config.Timezone = "Not/AZone"
	if err := checkClockTimezone(ctx); err == nil {
		t.Error("clock/timezone check should fail for an unresolvable timezone")
	}
}
