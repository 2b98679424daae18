package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pablasso/hobbytrack/internal/hobby"
)

func TestFileStore_LoadMissing(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope", "catalog.json"))

	c, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Hobbies) != 0 || len(c.Goals) != 0 || len(c.Tasks) != 0 {
		t.Errorf("expected empty catalog, got %+v", c)
	}
}

func TestFileStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "catalog.json")
	s := NewFileStore(path)

	in := &Catalog{
		Hobbies: []hobby.Hobby{{ID: "h1", Title: "Running", Category: "Fitness"}},
		Goals:   []hobby.Goal{{ID: "g1", Objective: "Run 5km", Unit: hobby.PeriodWeek, Steps: 3, HobbyID: "h1"}},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if in.UpdatedAt.IsZero() {
		t.Error("expected Save to stamp UpdatedAt")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("expected temp file to be renamed away")
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(out.Hobbies) != 1 || out.Hobbies[0].Title != "Running" {
		t.Errorf("unexpected hobbies: %+v", out.Hobbies)
	}
	if len(out.Goals) != 1 || out.Goals[0].HobbyID != "h1" {
		t.Errorf("unexpected goals: %+v", out.Goals)
	}
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path).Load(); err == nil {
		t.Error("expected parse error")
	}
}
