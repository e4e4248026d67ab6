package handlers_test

import (
	"net/http"
	"testing"
)

func TestStorage_AssignOverAPI(t *testing.T) {
	app, db, _ := newTestApp(t)
	sid := loginAs(t, db, "u-staff2")

	resp, err := app.Test(jsonReq(http.MethodPost, "/api/v1/products/storage",
		`{"productId":"TWD-2024-004","locationCode":"STD-A-01"}`, sid))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["status"] != "storage" {
		t.Errorf("status = %v, want storage", body["status"])
	}
	if body["locationId"] != "loc-STD-A-01" {
		t.Errorf("locationId = %v, want loc-STD-A-01", body["locationId"])
	}

	// The movement is attributed to the staff member who did it
	var userID string
	if err := db.Get(&userID, `SELECT user_id FROM activities WHERE product_id='TWD-2024-004' AND type='inventory_movement'`); err != nil {
		t.Fatalf("query activity: %v", err)
	}
	if userID != "u-staff2" {
		t.Errorf("activity user = %q, want u-staff2", userID)
	}
}

func TestStorage_ErrorMapping(t *testing.T) {
	app, db, _ := newTestApp(t)
	sid := loginAs(t, db, "u-staff1")

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing fields", `{}`, http.StatusBadRequest},
		{"bad pattern", `{"productId":"TWD-2024-004","locationCode":"SHELF-99"}`, http.StatusBadRequest},
		{"unknown shelf", `{"productId":"TWD-2024-004","locationCode":"STD-Z-09"}`, http.StatusBadRequest},
		{"listed product", `{"productId":"TWD-2024-001","locationCode":"STD-A-01"}`, http.StatusConflict},
		{"unknown product", `{"productId":"TWD-9999-999","locationCode":"STD-A-01"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(jsonReq(http.MethodPost, "/api/v1/products/storage", tc.body, sid))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.want)
			}
			resp.Body.Close()
		})
	}
}

func TestLocationValidate_NormalizesCase(t *testing.T) {
	app, db, _ := newTestApp(t)
	sid := loginAs(t, db, "u-staff1")

	resp, err := app.Test(jsonReq(http.MethodPost, "/api/v1/locations/validate",
		`{"locationCode":"vault-01"}`, sid))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body := decodeBody(t, resp)
	if body["valid"] != true {
		t.Errorf("valid = %v, want true", body["valid"])
	}
	if body["locationCode"] != "VAULT-01" {
		t.Errorf("locationCode = %v, want VAULT-01", body["locationCode"])
	}

	resp, err = app.Test(jsonReq(http.MethodPost, "/api/v1/locations/validate",
		`{"locationCode":"BAD CODE"}`, sid))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body = decodeBody(t, resp)
	if body["valid"] != false {
		t.Errorf("valid = %v, want false", body["valid"])
	}
}
