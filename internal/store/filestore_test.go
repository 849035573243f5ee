package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/keycast/internal/shortcut"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "shortcuts.json")
}

func TestOpenMissingFile(t *testing.T) {
	fs, err := Open(testPath(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	got, err := fs.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() = %v, want empty collection", got)
	}
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "shortcuts.json")
	if _, err := Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("parent directory not created: %v", err)
	}
}

func TestOpenCorruptFileStartsEmpty(t *testing.T) {
	path := testPath(t)
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, _ := fs.List()
	if len(got) != 0 {
		t.Errorf("List() = %v, want empty collection for corrupt file", got)
	}
}

func TestCreatePersistsAndReloads(t *testing.T) {
	path := testPath(t)
	fs, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	s := shortcut.Shortcut{ID: 100, Name: "Save", Sequence: []string{"Control+s"}}
	if err := fs.Create(s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A fresh store on the same file sees the shortcut.
	fs2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, _ := fs2.List()
	if len(got) != 1 || !reflect.DeepEqual(got[0], s) {
		t.Errorf("List() after reload = %v, want [%+v]", got, s)
	}
}

func TestStoreFileIsPrettyPrinted(t *testing.T) {
	path := testPath(t)
	fs, _ := Open(path)
	fs.Create(shortcut.Shortcut{ID: 1, Name: "One", Sequence: []string{"A"}})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store file: %v", err)
	}
	if !strings.Contains(string(data), "\n") {
		t.Errorf("store file is not pretty-printed: %q", data)
	}
}

func TestUpdate(t *testing.T) {
	fs, _ := Open(testPath(t))
	fs.Create(shortcut.Shortcut{ID: 1, Name: "One", Sequence: []string{"A"}})
	fs.Create(shortcut.Shortcut{ID: 2, Name: "Two", Sequence: []string{"B"}})

	err := fs.Update(shortcut.Shortcut{ID: 1, Name: "Renamed", Sequence: []string{"X", "Y"}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := fs.List()
	if got[0].Name != "Renamed" || !reflect.DeepEqual(got[0].Sequence, []string{"X", "Y"}) {
		t.Errorf("updated shortcut = %+v", got[0])
	}
	if got[1].Name != "Two" {
		t.Errorf("untouched shortcut changed: %+v", got[1])
	}
}

func TestUpdateNotFound(t *testing.T) {
	fs, _ := Open(testPath(t))

	err := fs.Update(shortcut.Shortcut{ID: 99, Sequence: []string{"A"}})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing id = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	fs, _ := Open(testPath(t))
	fs.Create(shortcut.Shortcut{ID: 1, Sequence: []string{"A"}})
	fs.Create(shortcut.Shortcut{ID: 2, Sequence: []string{"B"}})
	fs.Create(shortcut.Shortcut{ID: 3, Sequence: []string{"C"}})

	if err := fs.Delete(2); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, _ := fs.List()
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("List() = %v, want ids [1 3] preserving order", got)
	}
}

func TestDeleteNotFound(t *testing.T) {
	fs, _ := Open(testPath(t))

	if err := fs.Delete(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete missing id = %v, want ErrNotFound", err)
	}
}

func TestOnChangeNotifiesWithFullList(t *testing.T) {
	fs, _ := Open(testPath(t))

	var calls [][]shortcut.Shortcut
	fs.OnChange(func(shortcuts []shortcut.Shortcut) {
		calls = append(calls, shortcuts)
	})

	fs.Create(shortcut.Shortcut{ID: 1, Sequence: []string{"A"}})
	fs.Create(shortcut.Shortcut{ID: 2, Sequence: []string{"B"}})
	fs.Delete(1)

	if len(calls) != 3 {
		t.Fatalf("callback invoked %d times, want 3", len(calls))
	}
	if len(calls[0]) != 1 || len(calls[1]) != 2 || len(calls[2]) != 1 {
		t.Errorf("callback list sizes = %d/%d/%d, want 1/2/1",
			len(calls[0]), len(calls[1]), len(calls[2]))
	}
	if calls[2][0].ID != 2 {
		t.Errorf("final list = %v, want shortcut 2 remaining", calls[2])
	}
}

func TestOnChangeUnregister(t *testing.T) {
	fs, _ := Open(testPath(t))

	count := 0
	off := fs.OnChange(func([]shortcut.Shortcut) { count++ })

	fs.Create(shortcut.Shortcut{ID: 1, Sequence: []string{"A"}})
	off()
	fs.Create(shortcut.Shortcut{ID: 2, Sequence: []string{"B"}})

	if count != 1 {
		t.Errorf("callback invoked %d times after unregister, want 1", count)
	}
}

func TestListReturnsCopies(t *testing.T) {
	fs, _ := Open(testPath(t))
	fs.Create(shortcut.Shortcut{ID: 1, Sequence: []string{"A"}})

	got, _ := fs.List()
	got[0].Sequence[0] = "mutated"

	again, _ := fs.List()
	if again[0].Sequence[0] != "A" {
		t.Error("List() aliases internal state")
	}
}
