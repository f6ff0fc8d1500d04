package vectordb

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/VishnuVamsi7/DocReporter/internal/domain"
)

func testDatabase() *domain.VectorDatabase {
	return &domain.VectorDatabase{
		Model:      "text-embedding-3-small",
		Dimensions: 3,
		Records: []domain.VectorRecord{
			{ChunkID: 0, Content: "first page text", Vector: []float32{0.1, 0.2, 0.3}, Pages: []int{1}},
			{ChunkID: 1, Content: "second page text", Vector: []float32{-0.4, 0.5, 0.6}, Pages: []int{2}},
		},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vector_database.json")
	want := testDatabase()

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.Model != want.Model || got.Dimensions != want.Dimensions {
		t.Errorf("metadata = %s/%d, want %s/%d", got.Model, got.Dimensions, want.Model, want.Dimensions)
	}
	if len(got.Records) != len(want.Records) {
		t.Fatalf("got %d records, want %d", len(got.Records), len(want.Records))
	}
	for i := range want.Records {
		w, g := want.Records[i], got.Records[i]
		if g.ChunkID != w.ChunkID || g.Content != w.Content {
			t.Errorf("record %d = %d/%q, want %d/%q", i, g.ChunkID, g.Content, w.ChunkID, w.Content)
		}
		for j := range w.Vector {
			if g.Vector[j] != w.Vector[j] {
				t.Errorf("record %d vector[%d] = %f, want %f", i, j, g.Vector[j], w.Vector[j])
			}
		}
	}
}

func TestSaveLoad_EmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	empty := &domain.VectorDatabase{Model: "text-embedding-3-small"}

	if err := Save(path, empty); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("expected empty database, got %d records", got.Len())
	}
}

func TestLoad_RejectsBareArraySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.json")
	legacy := `[{"chunk_id":0,"content":"text","vector":[0.1,0.2]}]`
	if err := os.WriteFile(path, []byte(legacy), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, domain.ErrModelMismatch) {
		t.Fatalf("expected ErrModelMismatch for model-less snapshot, got %v", err)
	}
}

func TestLoad_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	if err := os.WriteFile(path, []byte(`{"model": "m", "records": [{`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSave_RefusesInvalidDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	bad := testDatabase()
	bad.Records[1].Vector = []float32{1} // dimension mismatch

	if err := Save(path, bad); !errors.Is(err, domain.ErrDimMismatch) {
		t.Fatalf("expected ErrDimMismatch, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no artifact must be written for an invalid database")
	}
}

func TestSave_LeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.json")
	if err := Save(path, testDatabase()); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "db.json" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("unexpected directory contents: %v", names)
	}
}
