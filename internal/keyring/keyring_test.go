package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestConnectionStringRoundtrip(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://rollcall@db.internal:5432/rollcall?sslmode=require"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() error = %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() error = %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}

	// A second set replaces the entry
	replacement := "postgres://rollcall@failover.internal:5432/rollcall"
	if err := SetConnectionString(replacement); err != nil {
		t.Fatalf("SetConnectionString() error = %v", err)
	}
	if got, _ := GetConnectionString(); got != replacement {
		t.Errorf("GetConnectionString() after overwrite = %q, want %q", got, replacement)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should fail")
	}
}

func TestGetConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()

	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://rollcall@localhost:5432/rollcall"); err != nil {
		t.Fatalf("SetConnectionString() error = %v", err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() error = %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete, GetConnectionString() error = %v, want ErrNotFound", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want ErrNotFound", err)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	// The mock backend always answers, with or without an entry
	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true with mock keyring")
	}
}
