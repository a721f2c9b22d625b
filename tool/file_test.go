package tool

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00 B"},
		{42, "42.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
		{2 * 1024 * 1024 * 1024 * 1024 * 1024, "2048.00 TB"},
		{-1, "-"},
		{math.NaN(), "-"},
	}
	for _, c := range cases {
		if got := FormatBytes(c.in); got != c.want {
			t.Errorf("FormatBytes(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAttachmentDisposition(t *testing.T) {
	got := AttachmentDisposition("report.pdf")
	if !strings.HasPrefix(got, "attachment;") || !strings.Contains(got, `filename="report.pdf"`) {
		t.Errorf("Unexpected header %q", got)
	}
	got = AttachmentDisposition("报告 1.pdf")
	if !strings.Contains(got, "filename*=UTF-8''%E6%8A%A5") {
		t.Errorf("Non-ASCII name not encoded: %q", got)
	}
	if strings.Contains(got, "报") {
		t.Errorf("Header must be ASCII, got %q", got)
	}
}

func TestNextAvailablePath(t *testing.T) {
	dir := t.TempDir()
	if got := NextAvailablePath(dir, "name.ext"); got != filepath.Join(dir, "name.ext") {
		t.Errorf("Expected free name to be kept, got %s", got)
	}
	for _, n := range []string{"name.ext", "name_1.ext"} {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if got := NextAvailablePath(dir, "name.ext"); got != filepath.Join(dir, "name_2.ext") {
		t.Errorf("Expected name_2.ext, got %s", got)
	}
	if err := os.WriteFile(filepath.Join(dir, "README"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if got := NextAvailablePath(dir, "README"); got != filepath.Join(dir, "README_1") {
		t.Errorf("Expected README_1, got %s", got)
	}
}

func TestGeneratePinRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		pin, err := GeneratePin()
		if err != nil {
			t.Fatal(err)
		}
		if len(pin) != 4 || pin < "1000" || pin > "9999" {
			t.Fatalf("PIN out of range: %q", pin)
		}
	}
}

func TestNextAvailablePathStopsOnLstatError(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("n", 300) + ".txt"
	done := make(chan string, 1)
	go func() { done <- NextAvailablePath(dir, long) }()
	select {
	case got := <-done:
		if got != filepath.Join(dir, long) {
			t.Errorf("Expected the requested name back, got %s", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("NextAvailablePath did not return for an unusable name")
	}
}
