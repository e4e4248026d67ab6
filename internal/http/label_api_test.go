package handlers_test

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

func TestLabelGet_ServesPDF(t *testing.T) {
	app, _, cfg := newTestApp(t)

	pdf := []byte("%PDF-1.4\n%%EOF\n")
	if err := os.WriteFile(filepath.Join(cfg.LabelsDir, "SHP-001.pdf"), pdf, 0644); err != nil {
		t.Fatalf("write label: %v", err)
	}

	resp, err := app.Test(jsonReq(http.MethodGet, "/api/v1/shipping/label/get?fileName=SHP-001.pdf", "", ""))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
}

func TestLabelGet_MissingFileName(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(jsonReq(http.MethodGet, "/api/v1/shipping/label/get", "", ""))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLabelGet_TraversalBlocked(t *testing.T) {
	app, _, cfg := newTestApp(t)

	// A file outside the labels dir that a traversal would reach
	outside := filepath.Join(filepath.Dir(cfg.LabelsDir), "secret.pdf")
	if err := os.WriteFile(outside, []byte("secret"), 0644); err != nil {
		t.Fatalf("write outside file: %v", err)
	}

	names := []string{
		"../secret.pdf",
		"..%2Fsecret.pdf",
		`..\secret.pdf`,
		"sub/../../secret.pdf",
		"label.txt",
	}
	for _, name := range names {
		target := "/api/v1/shipping/label/get?fileName=" + url.QueryEscape(name)
		resp, err := app.Test(jsonReq(http.MethodGet, target, "", ""))
		if err != nil {
			t.Fatalf("%s: request: %v", name, err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", name, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestLabelGet_UnknownFile(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(jsonReq(http.MethodGet, "/api/v1/shipping/label/get?fileName=SHP-404.pdf", "", ""))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()
}
