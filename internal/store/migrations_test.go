package store

import "testing"

func TestMigrateBringsSchemaCurrent(t *testing.T) {
	db := openTestDB(t)

	v, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if want := migrations[len(migrations)-1].Version; v != want {
		t.Errorf("SchemaVersion = %d, want %d", v, want)
	}

	// Re-running is a no-op.
	if err := db.migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}
