package handlers_test

import (
	"net/http"
	"testing"
)

func TestProducts_ListAndFilter(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(jsonReq(http.MethodGet, "/api/v1/products", "", ""))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body := decodeBody(t, resp)
	data, _ := body["data"].([]any)
	if len(data) != 4 {
		t.Fatalf("products = %d, want 4 seeded", len(data))
	}
	pg, _ := body["pagination"].(map[string]any)
	if pg["total"] != float64(4) {
		t.Errorf("total = %v, want 4", pg["total"])
	}

	resp, err = app.Test(jsonReq(http.MethodGet, "/api/v1/products?status=sold", "", ""))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body = decodeBody(t, resp)
	data, _ = body["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("sold products = %d, want 1", len(data))
	}
	p, _ := data[0].(map[string]any)
	if p["id"] != "TWD-2024-003" {
		t.Errorf("id = %v, want TWD-2024-003", p["id"])
	}
}

func TestProducts_DetailIncludesShipments(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(jsonReq(http.MethodGet, "/api/v1/products/TWD-2024-003", "", ""))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	shipments, _ := body["shipments"].([]any)
	if len(shipments) != 1 {
		t.Fatalf("shipments = %d, want 1", len(shipments))
	}
	s, _ := shipments[0].(map[string]any)
	if s["id"] != "SHP-001" {
		t.Errorf("shipment id = %v, want SHP-001", s["id"])
	}
}

func TestProducts_DetailErrors(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(jsonReq(http.MethodGet, "/api/v1/products/TWD-9999-999", "", ""))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown: status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = app.Test(jsonReq(http.MethodGet, "/api/v1/products/%2E%2E%2Fetc", "", ""))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest && resp.StatusCode != http.StatusNotFound {
		t.Errorf("bad id: status = %d, want 400 or 404", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestProducts_HistoryAfterMovement(t *testing.T) {
	app, db, _ := newTestApp(t)
	sid := loginAs(t, db, "u-staff1")

	resp, err := app.Test(jsonReq(http.MethodPost, "/api/v1/products/storage",
		`{"productId":"TWD-2024-004","locationCode":"STD-B-02"}`, sid))
	if err != nil {
		t.Fatalf("store request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("store: status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = app.Test(jsonReq(http.MethodGet, "/api/v1/products/TWD-2024-004/history", "", ""))
	if err != nil {
		t.Fatalf("history request: %v", err)
	}
	body := decodeBody(t, resp)
	history, _ := body["history"].([]any)
	if len(history) != 1 {
		t.Fatalf("history = %d, want 1", len(history))
	}
	h, _ := history[0].(map[string]any)
	if h["type"] != "inventory_movement" {
		t.Errorf("type = %v, want inventory_movement", h["type"])
	}
}
