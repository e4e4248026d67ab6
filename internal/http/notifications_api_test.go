package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
)

func seedNotification(t *testing.T, db *sqlx.DB, id, userID string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO notifications(id,user_id,type,title,message,priority)
	                   VALUES(?,?,?,?,?,?)`,
		id, userID, "product_sold", "Label request", "Product sold, print the label", "high")
	if err != nil {
		t.Fatalf("seed notification: %v", err)
	}
}

func TestNotifications_ListRequiresLogin(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(jsonReq(http.MethodGet, "/api/v1/notifications", "", ""))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestNotifications_ListScopedToUser(t *testing.T) {
	app, db, _ := newTestApp(t)
	seedNotification(t, db, "ntf-1", "u-seller1")
	seedNotification(t, db, "ntf-2", "u-staff1")

	sid := loginAs(t, db, "u-seller1")
	resp, err := app.Test(jsonReq(http.MethodGet, "/api/v1/notifications", "", sid))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	items, _ := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1 (own notifications only)", len(items))
	}
	if body["unread"] != float64(1) {
		t.Errorf("unread = %v, want 1", body["unread"])
	}
}

func TestMarkAsRead_Idempotent(t *testing.T) {
	app, db, _ := newTestApp(t)
	seedNotification(t, db, "ntf-1", "u-seller1")
	sid := loginAs(t, db, "u-seller1")

	for i := 0; i < 2; i++ {
		resp, err := app.Test(jsonReq(http.MethodPost, "/api/v1/notifications/mark-as-read",
			`{"notificationId":"ntf-1"}`, sid))
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, resp.StatusCode)
		}
		body := decodeBody(t, resp)
		if body["success"] != true {
			t.Errorf("request %d: success = %v, want true", i, body["success"])
		}
	}

	var read int
	if err := db.Get(&read, `SELECT read FROM notifications WHERE id='ntf-1'`); err != nil {
		t.Fatalf("query notification: %v", err)
	}
	if read != 1 {
		t.Errorf("read = %d, want 1", read)
	}
}

func TestMarkAsRead_RequiresLogin(t *testing.T) {
	app, db, _ := newTestApp(t)
	seedNotification(t, db, "ntf-1", "u-seller1")

	resp, err := app.Test(jsonReq(http.MethodPost, "/api/v1/notifications/mark-as-read",
		`{"notificationId":"ntf-1"}`, ""))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()

	var read int
	if err := db.Get(&read, `SELECT read FROM notifications WHERE id='ntf-1'`); err != nil {
		t.Fatalf("query notification: %v", err)
	}
	if read != 0 {
		t.Errorf("read = %d, want 0 (anonymous caller must not mutate)", read)
	}
}

func TestMarkAsRead_OtherUsersNotification(t *testing.T) {
	app, db, _ := newTestApp(t)
	seedNotification(t, db, "ntf-1", "u-seller1")
	staffSid := loginAs(t, db, "u-staff1")

	resp, err := app.Test(jsonReq(http.MethodPost, "/api/v1/notifications/mark-as-read",
		`{"notificationId":"ntf-1"}`, staffSid))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	var read int
	if err := db.Get(&read, `SELECT read FROM notifications WHERE id='ntf-1'`); err != nil {
		t.Fatalf("query notification: %v", err)
	}
	if read != 0 {
		t.Errorf("read = %d, want 0 (cross-user caller must not mutate)", read)
	}
}

func TestMarkAsRead_Errors(t *testing.T) {
	app, db, _ := newTestApp(t)
	sid := loginAs(t, db, "u-seller1")

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing id", `{}`, http.StatusBadRequest},
		{"unknown id", `{"notificationId":"ntf-missing"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(jsonReq(http.MethodPost, "/api/v1/notifications/mark-as-read", tc.body, sid))
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

func TestNotifications_LimitClamped(t *testing.T) {
	app, db, _ := newTestApp(t)
	for i := 0; i < 25; i++ {
		seedNotification(t, db, fmt.Sprintf("ntf-%02d", i), "u-seller1")
	}
	sid := loginAs(t, db, "u-seller1")

	resp, err := app.Test(jsonReq(http.MethodGet, "/api/v1/notifications?limit=9999", "", sid))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body := decodeBody(t, resp)
	items, _ := body["items"].([]any)
	if len(items) > 100 {
		t.Errorf("items = %d, want at most 100", len(items))
	}
	if len(items) != 25 {
		t.Errorf("items = %d, want 25", len(items))
	}
}
