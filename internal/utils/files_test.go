package utils_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/popmap/internal/utils"
)

func TestSafeWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "map.geojson")
	if err := utils.SafeWriteFile(path, []byte("{}")); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "{}" {
		t.Fatalf("read back %q, %v", b, err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := utils.WriteOutput(&buf, "-", []byte("a,b\n")); err != nil {
		t.Fatalf("stdout: %v", err)
	}
	if buf.String() != "a,b\n" {
		t.Fatalf("buf = %q", buf.String())
	}
	path := filepath.Join(t.TempDir(), "areas.csv")
	buf.Reset()
	if err := utils.WriteOutput(&buf, path, []byte("x")); err != nil {
		t.Fatalf("file: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("file output leaked to writer")
	}
	if b, _ := os.ReadFile(path); string(b) != "x" {
		t.Fatalf("file = %q", b)
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := utils.PrettyJSON(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("PrettyJSON: %v", err)
	}
	if !strings.Contains(string(b), "\n  \"a\": 1\n") {
		t.Fatalf("not indented: %s", b)
	}
}
