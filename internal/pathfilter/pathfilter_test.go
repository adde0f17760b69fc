package pathfilter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"logsearch/internal/daterange"
)

// entryByName 列出目录并返回指定名称的条目。
func entryByName(t *testing.T, dir string, name string) os.DirEntry {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir failed: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() == name {
			return entry
		}
	}
	t.Fatalf("entry %s not found", name)
	return nil
}

func TestIsLogFile(t *testing.T) {
	tempDir := t.TempDir()
	for _, name := range []string{"access_20240101", "error_20240101", "xaccess_1"} {
		if err := os.WriteFile(filepath.Join(tempDir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture failed: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(tempDir, "access_dir"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	expected := map[string]bool{
		"access_20240101": true,
		"error_20240101":  false,
		"xaccess_1":       false,
		"access_dir":      false,
	}
	for name, want := range expected {
		if got := IsLogFile(entryByName(t, tempDir, name), DefaultPrefix); got != want {
			t.Fatalf("IsLogFile(%s): expected %v, got %v", name, want, got)
		}
	}
}

// TestInDateRangeBoundaries 验证修改时间恰好等于边界时被排除。
func TestInDateRangeBoundaries(t *testing.T) {
	window, err := daterange.NewWindow("20240101", "20240103")
	if err != nil {
		t.Fatalf("new window failed: %v", err)
	}

	filePath := filepath.Join(t.TempDir(), "access_1")
	if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture failed: %v", err)
	}

	cases := []struct {
		modTime time.Time
		want    bool
	}{
		{window.From, false},
		{window.To, false},
		{window.From.Add(time.Second), true},
		{window.To.Add(-time.Second), true},
		{window.To.Add(time.Hour), false},
	}

	for _, item := range cases {
		if err := os.Chtimes(filePath, item.modTime, item.modTime); err != nil {
			t.Fatalf("chtimes failed: %v", err)
		}
		got, err := InDateRange(filePath, window)
		if err != nil {
			t.Fatalf("in date range failed: %v", err)
		}
		if got != item.want {
			t.Fatalf("mtime %v: expected %v, got %v", item.modTime, item.want, got)
		}
	}
}

func TestInDateRangeMissingFile(t *testing.T) {
	window, _ := daterange.NewWindow("20240101", "20240103")

	ok, err := InDateRange(filepath.Join(t.TempDir(), "missing"), window)
	if err == nil {
		t.Fatalf("expected stat error, got nil")
	}
	if ok {
		t.Fatalf("missing file must be excluded")
	}
}

// TestSymlinkedLogFiles 验证符号链接按名称通过，修改时间与类型按目标判断。
func TestSymlinkedLogFiles(t *testing.T) {
	window, _ := daterange.NewWindow("20240101", "20240103")
	tempDir := t.TempDir()
	hostDir := filepath.Join(tempDir, "host1")
	if err := os.Mkdir(hostDir, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	target := filepath.Join(tempDir, "real.log")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture failed: %v", err)
	}
	modTime := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(target, modTime, modTime); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	links := map[string]string{
		"access_file":     target,
		"access_dangling": filepath.Join(tempDir, "missing.log"),
		"access_dir":      tempDir,
		"other_file":      target,
	}
	for name, dest := range links {
		if err := os.Symlink(dest, filepath.Join(hostDir, name)); err != nil {
			t.Fatalf("symlink failed: %v", err)
		}
	}

	for name, want := range map[string]bool{"access_file": true, "access_dangling": true, "access_dir": true, "other_file": false} {
		if got := IsLogFile(entryByName(t, hostDir, name), DefaultPrefix); got != want {
			t.Fatalf("IsLogFile(%s): expected %v, got %v", name, want, got)
		}
	}

	ok, err := InDateRange(filepath.Join(hostDir, "access_file"), window)
	if err != nil || !ok {
		t.Fatalf("link to in-range file: expected (true, nil), got (%v, %v)", ok, err)
	}

	ok, err = InDateRange(filepath.Join(hostDir, "access_dangling"), window)
	if err == nil || ok {
		t.Fatalf("dangling link: expected stat error, got (%v, %v)", ok, err)
	}

	ok, err = InDateRange(filepath.Join(hostDir, "access_dir"), window)
	if err != nil || ok {
		t.Fatalf("link to directory: expected (false, nil), got (%v, %v)", ok, err)
	}
}
