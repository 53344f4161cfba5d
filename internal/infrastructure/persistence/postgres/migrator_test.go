package postgres

import "testing"

func TestMigrationsAreSequential(t *testing.T) {
	for i, m := range Migrations {
		if m.ID != i+1 {
			t.Errorf("migration %d has id %d", i, m.ID)
		}
		if m.Name == "" || m.SQL == "" {
			t.Errorf("migration %d is incomplete", m.ID)
		}
		if len(m.Checksum()) != 64 {
			t.Errorf("checksum = %q", m.Checksum())
		}
	}
}

func TestChecksumChangesWithSQL(t *testing.T) {
	a := Migration{SQL: "SELECT 1"}
	b := Migration{SQL: "SELECT 2"}
	if a.Checksum() == b.Checksum() {
		t.Error("different SQL must give different checksums")
	}
}
