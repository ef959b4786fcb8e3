package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestStorage_UploadExistsDelete(t *testing.T) {
	s, err := NewStorage(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	ctx := context.Background()

	if err := s.Upload(ctx, "job.mp4", strings.NewReader("hello")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	data, err := os.ReadFile(s.Path("job.mp4"))
	if err != nil || string(data) != "hello" {
		t.Fatalf("expected file on disk, got %q, %v", data, err)
	}
	if ok, err := s.Exists(ctx, "job.mp4"); err != nil || !ok {
		t.Fatalf("expected Exists true, got %v, %v", ok, err)
	}

	if err := s.Delete(ctx, "job.mp4"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := s.Exists(ctx, "job.mp4"); ok {
		t.Error("expected file removed")
	}
	if err := s.Delete(ctx, "job.mp4"); err != nil {
		t.Errorf("deleting a missing file should succeed, got %v", err)
	}
}

func TestStorage_PartialUploadRemoved(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Upload(context.Background(), "x.wav", failingReader{}); err == nil {
		t.Fatal("expected upload error")
	}
	if _, err := os.Stat(filepath.Join(s.BasePath(), "x.wav")); !os.IsNotExist(err) {
		t.Error("expected partial file removed")
	}
}

func TestStorage_KeysStayInsideBase(t *testing.T) {
	base := t.TempDir()
	s, err := NewStorage(base)
	if err != nil {
		t.Fatal(err)
	}
	p := s.Path("../../etc/passwd")
	if !strings.HasPrefix(p, s.BasePath()+string(os.PathSeparator)) {
		t.Errorf("path escaped base: %s", p)
	}
	if err := s.Upload(context.Background(), "", strings.NewReader("x")); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestNewStorage_CreatesBaseDir(t *testing.T) {
	s, err := NewStorage(filepath.Join(t.TempDir(), "a", "b"))
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	if !filepath.IsAbs(s.BasePath()) {
		t.Errorf("expected absolute base path, got %s", s.BasePath())
	}
	if info, err := os.Stat(s.BasePath()); err != nil || !info.IsDir() {
		t.Errorf("expected base directory created, got %v", err)
	}
}
