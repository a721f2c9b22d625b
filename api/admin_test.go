package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/localshare-go/types"
)

func adminRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, "/api/self/v1"+target, strings.NewReader(body))
	req.RemoteAddr = "127.0.0.1:50000"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Invalid JSON %q: %v", w.Body.String(), err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("Invalid data %q: %v", envelope.Data, err)
	}
}

func setupAdmin(t *testing.T) (*gin.Engine, *Server) {
	s, _ := newTestServer(t, 9000, 0)
	return NewAdminRouter(s, nil), s
}

func TestAdminRejectsRemoteClients(t *testing.T) {
	router, _ := setupAdmin(t)
	req := adminRequest(http.MethodGet, "/status", "")
	req.RemoteAddr = "192.168.1.20:50000"
	w := doRequest(router, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status code %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestAdminReplaceShares(t *testing.T) {
	router, s := setupAdmin(t)
	w := doRequest(router, adminRequest(http.MethodPut, "/shares",
		`[{"name":"a","path":"/tmp/a"},{"name":"b","path":""},{"name":"a","path":"/tmp/a2"}]`))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}
	var entries []types.ShareEntry
	decodeData(t, w, &entries)
	if len(entries) != 1 || entries[0].Path != "/tmp/a2" {
		t.Errorf("Unexpected entries %+v", entries)
	}
	if p, ok := s.Context().Registry.Resolve("a"); !ok || p != "/tmp/a2" {
		t.Errorf("Registry not updated, got %q", p)
	}

	w = doRequest(router, adminRequest(http.MethodPut, "/shares", `{"bad":`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestAdminPinLifecycle(t *testing.T) {
	router, s := setupAdmin(t)
	w := doRequest(router, adminRequest(http.MethodPost, "/pin", ""))
	var pin types.PinStatus
	decodeData(t, w, &pin)
	if !pin.Enabled || len(pin.Pin) != 4 {
		t.Fatalf("Unexpected pin status %+v", pin)
	}
	if !s.Context().Gate.Verify(pin.Pin) {
		t.Error("Generated PIN does not verify")
	}

	w = doRequest(router, adminRequest(http.MethodGet, "/status", ""))
	var status types.AdminStatusResponse
	decodeData(t, w, &status)
	if !status.PinEnabled || status.Pin != pin.Pin || status.Status != types.StatusStopped {
		t.Errorf("Unexpected status %+v", status)
	}

	w = doRequest(router, adminRequest(http.MethodDelete, "/pin", ""))
	decodeData(t, w, &pin)
	if pin.Enabled || pin.Pin != "" {
		t.Errorf("Expected disabled gate, got %+v", pin)
	}
}

func TestAdminUploadConfig(t *testing.T) {
	router, _ := setupAdmin(t)
	dir := filepath.Join(t.TempDir(), "incoming")
	body, _ := json.Marshal(types.UploadConfigRequest{Enabled: true, Path: dir})
	w := doRequest(router, adminRequest(http.MethodPut, "/upload-config", string(bytes.TrimSpace(body))))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var cfg types.UploadConfig
	decodeData(t, w, &cfg)
	if !cfg.Enabled || cfg.Path != dir {
		t.Errorf("Unexpected upload config %+v", cfg)
	}
}

func TestAdminQRCodeRequiresRunningServer(t *testing.T) {
	router, _ := setupAdmin(t)
	w := doRequest(router, adminRequest(http.MethodGet, "/create-qr-code", ""))
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status code %d, got %d", http.StatusConflict, w.Code)
	}

	w = doRequest(router, adminRequest(http.MethodGet, "/create-qr-code?data=http://example.test&size=64x64", ""))
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Errorf("Expected PNG, got %d %s", w.Code, w.Header().Get("Content-Type"))
	}
}
