package database

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "scenarios.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleScenario(name string, seed int64) *Scenario {
	return &Scenario{
		Name:       name,
		Seed:       seed,
		Players:    2,
		Skills:     0x5,
		Difficulty: 4,
		Length:     3,
		Width:      5,
		Height:     4,
		Treasures:  3,
		Data:       []byte{'S', 'C', 'N', 'W', 1, 0, 0xff},
	}
}

func TestOpenCreatesNestedDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "scenarios.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Database file was not created: %v", err)
	}
	if _, ok := db.Dialect().(*SQLiteDialect); !ok {
		t.Errorf("Dialect() = %T, want *SQLiteDialect", db.Dialect())
	}
}

func TestOpenRejectsBadConfig(t *testing.T) {
	if _, err := OpenWithConfig(Config{Driver: "mysql"}); err == nil {
		t.Error("Expected an error for an unknown driver")
	}
	if _, err := OpenWithConfig(Config{Driver: "sqlite"}); err == nil {
		t.Error("Expected an error for a missing sqlite path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.db")
	for i := 0; i < 3; i++ {
		db, err := Open(path)
		if err != nil {
			t.Fatalf("Open #%d failed: %v", i+1, err)
		}
		db.Close()
	}
}

func TestMigrationWALMode(t *testing.T) {
	db := openTestDB(t)
	var mode string
	if err := db.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestSaveAndGetScenario(t *testing.T) {
	db := openTestDB(t)
	s := sampleScenario("caves-1", 1234)

	id, err := db.SaveScenario(s)
	if err != nil {
		t.Fatalf("SaveScenario failed: %v", err)
	}
	if id <= 0 || s.ID != id {
		t.Errorf("SaveScenario() id = %d, s.ID = %d", id, s.ID)
	}

	got, err := db.GetScenario(id)
	if err != nil {
		t.Fatalf("GetScenario failed: %v", err)
	}
	if got.Name != s.Name || got.Seed != s.Seed || got.Skills != s.Skills || got.Treasures != s.Treasures {
		t.Errorf("GetScenario() = %+v, want %+v", got, s)
	}
	if string(got.Data) != string(s.Data) {
		t.Errorf("Data = %v, want %v", got.Data, s.Data)
	}
	if !got.CreatedAt.Equal(s.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, s.CreatedAt)
	}

	byName, err := db.GetScenarioByName("caves-1")
	if err != nil || byName.ID != id {
		t.Errorf("GetScenarioByName() = %v, %v", byName, err)
	}
}

func TestSaveScenarioErrors(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.SaveScenario(sampleScenario("dup", 1)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		s    *Scenario
		want error
	}{
		{"duplicate name", sampleScenario("dup", 2), ErrDuplicateName},
		{"no name", sampleScenario("", 3), nil},
		{"no data", &Scenario{Name: "empty"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.SaveScenario(tt.s)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("SaveScenario() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestListAndDeleteScenarios(t *testing.T) {
	db := openTestDB(t)
	for i, name := range []string{"a", "b", "c"} {
		if _, err := db.SaveScenario(sampleScenario(name, int64(i))); err != nil {
			t.Fatal(err)
		}
	}

	list, err := db.ListScenarios()
	if err != nil {
		t.Fatalf("ListScenarios failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("ListScenarios() returned %d, want 3", len(list))
	}
	for i, s := range list {
		if s.Seed != int64(i) {
			t.Errorf("list[%d].Seed = %d, want %d", i, s.Seed, i)
		}
		if s.Data != nil {
			t.Errorf("list[%d] carries data", i)
		}
	}

	if err := db.DeleteScenario(list[1].ID); err != nil {
		t.Fatalf("DeleteScenario failed: %v", err)
	}
	if _, err := db.GetScenario(list[1].ID); !errors.Is(err, ErrScenarioNotFound) {
		t.Errorf("GetScenario() after delete error = %v, want ErrScenarioNotFound", err)
	}
	if err := db.DeleteScenario(list[1].ID); !errors.Is(err, ErrScenarioNotFound) {
		t.Errorf("second DeleteScenario() error = %v, want ErrScenarioNotFound", err)
	}
	if n, err := db.CountScenarios(); err != nil || n != 2 {
		t.Errorf("CountScenarios() = %d, %v, want 2", n, err)
	}
}
