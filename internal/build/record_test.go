package build

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveAndLoadRecord(t *testing.T) {
	dir := t.TempDir()
	now := time.Now().Truncate(time.Second)
	r := &record{
		Configure: []string{"cmake", "/src"},
		Compile:   []string{"cmake", "--build", "."},
		Jobs:      3,
		Platform:  "linux/64bit",
		BuildTime: now,
	}
	if err := saveRecord(dir, r); err != nil {
		t.Fatalf("saveRecord failed: %v", err)
	}

	loaded, err := loadRecord(dir)
	if err != nil {
		t.Fatalf("loadRecord failed: %v", err)
	}
	if loaded.Jobs != 3 || loaded.Platform != "linux/64bit" {
		t.Errorf("loaded = %+v", loaded)
	}
	if !loaded.BuildTime.Equal(now) {
		t.Errorf("BuildTime mismatch: got %v, want %v", loaded.BuildTime, now)
	}
}

func TestLoadRecord_NotExist(t *testing.T) {
	if _, err := loadRecord(t.TempDir()); err == nil {
		t.Fatal("expected error for missing record, got nil")
	}
}

func TestLoadRecord_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, recordFile), []byte("invalid json"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if _, err := loadRecord(dir); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}
