package models

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
)

func TestAccessGateGenerate(t *testing.T) {
	g := NewAccessGate()
	first, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	n, err := strconv.Atoi(first)
	if err != nil || n < 1000 || n > 9999 {
		t.Errorf("Expected 4-digit PIN, got %q", first)
	}
	if !g.Status().Enabled {
		t.Error("Expected gate to be enabled after Generate")
	}
	if !g.Verify(first) {
		t.Error("Expected current PIN to verify")
	}
	if g.Verify("0000") {
		t.Error("Expected wrong PIN to fail")
	}

	g.Disable()
	if st := g.Status(); st.Enabled || st.Pin != "" {
		t.Errorf("Expected disabled empty gate, got %+v", st)
	}
	if g.Verify(first) {
		t.Error("Expected verify to fail once disabled")
	}
}

func TestAccessGatePlainCookie(t *testing.T) {
	g := NewAccessGate()
	w := httptest.NewRecorder()
	if err := g.IssueCookie(w); err != nil {
		t.Fatal(err)
	}
	header := w.Header().Get("Set-Cookie")
	if header != "pin-verified=true; Path=/" {
		t.Errorf("Unexpected Set-Cookie %q", header)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if g.IsVerified(req) {
		t.Error("Request without cookie should not be verified")
	}
	req.AddCookie(&http.Cookie{Name: PinCookieName, Value: "true"})
	if !g.IsVerified(req) {
		t.Error("Request with pin-verified=true should be verified")
	}
}

func TestAccessGateSignedCookie(t *testing.T) {
	g := NewAccessGate(WithSignedCookie())
	forged := httptest.NewRequest(http.MethodGet, "/", nil)
	forged.AddCookie(&http.Cookie{Name: PinCookieName, Value: "true"})
	if g.IsVerified(forged) {
		t.Error("Unsigned cookie must be rejected in signed mode")
	}

	w := httptest.NewRecorder()
	if err := g.IssueCookie(w); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	if !g.IsVerified(req) {
		t.Error("Signed cookie issued by the gate should verify")
	}
}

func TestAccessGateAttemptLimit(t *testing.T) {
	g := NewAccessGate(WithAttemptLimit(2))
	if !g.Allow("10.0.0.2") || !g.Allow("10.0.0.2") {
		t.Fatal("First attempts should be allowed")
	}
	if g.Allow("10.0.0.2") {
		t.Error("Third attempt within the burst should be refused")
	}
	if !g.Allow("10.0.0.3") {
		t.Error("Other clients keep their own budget")
	}
}

func TestAccessGateAttemptLimitConcurrent(t *testing.T) {
	g := NewAccessGate(WithAttemptLimit(3))
	var allowed atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if g.Allow("10.0.0.9") {
				allowed.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()
	if n := allowed.Load(); n > 3 {
		t.Errorf("Expected at most 3 attempts through, got %d", n)
	}
}

func TestUploadSettingsSet(t *testing.T) {
	u := NewUploadSettings(1 << 20)
	dir := filepath.Join(t.TempDir(), "nested", "in")
	if err := u.Set(true, dir); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got := u.Get()
	if !got.Enabled || got.Path != dir {
		t.Errorf("Unexpected settings %+v", got)
	}
	if u.MaxFileSize() != 1<<20 {
		t.Errorf("Unexpected max size %d", u.MaxFileSize())
	}
}

func TestUploadSettingsSetFailureKeepsPrevious(t *testing.T) {
	u := NewUploadSettings(1 << 20)
	good := t.TempDir()
	if err := u.Set(true, good); err != nil {
		t.Fatal(err)
	}
	blocker := filepath.Join(good, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := u.Set(false, filepath.Join(blocker, "sub")); err == nil {
		t.Fatal("Expected error when the directory cannot be created")
	}
	if got := u.Get(); !got.Enabled || got.Path != good {
		t.Errorf("Settings changed after failure: %+v", got)
	}
}
