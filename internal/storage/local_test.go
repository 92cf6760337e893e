package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUpload(t *testing.T) {
	baseDir := t.TempDir()
	store := NewLocalStore(baseDir, "/media/")

	url, err := store.Upload("workouts/javi/2025-06-10_abc.jpg", []byte("jpeg bytes"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if url != "/media/workouts/javi/2025-06-10_abc.jpg" {
		t.Fatalf("url = %s", url)
	}

	data, err := os.ReadFile(filepath.Join(baseDir, "workouts", "javi", "2025-06-10_abc.jpg"))
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Fatalf("content = %q", data)
	}
}

func TestUploadRejectsTraversal(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/media")

	for _, path := range []string{"../escape.jpg", "a/../../escape.jpg", "", "/"} {
		if _, err := store.Upload(path, []byte("x")); err == nil {
			t.Fatalf("Upload(%q) should have failed", path)
		}
	}
}
