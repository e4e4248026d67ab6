package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: SQLite serializes writes anyway, and a :memory: DSN
	// would otherwise give every pooled connection its own empty database.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Master data first: products reference status keys.
	if err := seedStatuses(db); err != nil {
		return nil, err
	}
	if err := seedLocations(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}
	// Demo products/shipments if the DB is empty (idempotent; safe every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Lifecycle status registry
CREATE TABLE IF NOT EXISTS product_statuses(
  id TEXT PRIMARY KEY,
  key TEXT NOT NULL UNIQUE,
  name_ja TEXT NOT NULL,
  name_en TEXT NOT NULL,
  description TEXT,
  sort_order INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_statuses_sort ON product_statuses(sort_order);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('SELLER','STAFF','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Storage locations
CREATE TABLE IF NOT EXISTS locations(
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  zone TEXT NOT NULL,
  capacity INTEGER NOT NULL DEFAULT 10,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  sku TEXT,
  category TEXT,
  condition TEXT,
  purchase_price NUMERIC NOT NULL DEFAULT 0 CHECK (purchase_price >= 0),
  status TEXT NOT NULL REFERENCES product_statuses(key),
  seller_id TEXT NOT NULL REFERENCES users(id),
  location_id TEXT NULL REFERENCES locations(id),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_status   ON products(status);
CREATE INDEX IF NOT EXISTS idx_products_seller   ON products(seller_id);
CREATE INDEX IF NOT EXISTS idx_products_created  ON products(created_at);

-- Shipments
CREATE TABLE IF NOT EXISTS shipments(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id),
  status TEXT NOT NULL DEFAULT 'preparing',
  carrier TEXT,
  tracking_number TEXT,
  label_file TEXT,
  notes TEXT,                       -- free text; may carry a bundle id
  sold_at TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_shipments_product ON shipments(product_id);
CREATE INDEX IF NOT EXISTS idx_shipments_status  ON shipments(status);

-- Delivery plans (seller intake batches)
CREATE TABLE IF NOT EXISTS delivery_plans(
  id TEXT PRIMARY KEY,
  plan_number TEXT NOT NULL,
  seller_id TEXT NOT NULL REFERENCES users(id),
  seller_name TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft','submitted','cancelled')),
  delivery_address TEXT NOT NULL DEFAULT '',
  contact_email TEXT NOT NULL DEFAULT '',
  total_items INTEGER NOT NULL DEFAULT 0,
  total_value NUMERIC NOT NULL DEFAULT 0,
  draft_json TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_plans_seller ON delivery_plans(seller_id);

-- Notifications
CREATE TABLE IF NOT EXISTS notifications(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id),
  type TEXT NOT NULL,
  title TEXT NOT NULL,
  message TEXT NOT NULL,
  read INTEGER NOT NULL DEFAULT 0,
  priority TEXT NOT NULL DEFAULT 'normal',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, read);

-- Activity timeline (inventory movements, status changes, audit trail)
CREATE TABLE IF NOT EXISTS activities(
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL,
  description TEXT NOT NULL,
  user_id TEXT NOT NULL,
  product_id TEXT NULL REFERENCES products(id),
  metadata_json TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_activities_product ON activities(product_id, created_at);

-- Picking tasks
CREATE TABLE IF NOT EXISTS picking_tasks(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id),
  shipment_id TEXT NOT NULL REFERENCES shipments(id),
  location_code TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','completed')),
  assignee TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  completed_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_picking_status ON picking_tasks(status);
`
	_, err := db.Exec(schema)
	return err
}

// seedStatuses installs the curated lifecycle registry (idempotent).
func seedStatuses(db *sqlx.DB) error {
	type row struct{ Key, JA, EN string }
	statuses := []row{
		{"inbound", "入庫待ち", "Inbound"},
		{"inspection", "検品中", "Inspection"},
		{"storage", "保管中", "In Storage"},
		{"listing", "出品中", "Listed"},
		{"sold", "購入者決定", "Sold"},
		{"ordered", "受注済み", "Ordered"},
		{"shipping", "出荷作業中", "Shipping"},
		{"returned", "返品", "Returned"},
		{"on_hold", "保留", "On Hold"},
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for i, s := range statuses {
		if _, err := tx.Exec(`
			INSERT INTO product_statuses(id, key, name_ja, name_en, sort_order, is_active)
			VALUES(?, ?, ?, ?, ?, 1)
			ON CONFLICT(key) DO NOTHING
		`, "st-"+s.Key, s.Key, s.JA, s.EN, (i+1)*10); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// seedLocations ensures the standard shelf map exists (idempotent).
func seedLocations(db *sqlx.DB) error {
	type loc struct{ Code, Zone string }
	locs := []loc{
		{"STD-A-01", "standard"}, {"STD-A-02", "standard"}, {"STD-A-03", "standard"},
		{"STD-B-01", "standard"}, {"STD-B-02", "standard"},
		{"HUM-01", "humidity"}, {"HUM-02", "humidity"},
		{"TEMP-01", "temperature"},
		{"VAULT-01", "vault"},
		{"INSP-A", "inspection"}, {"INSP-B", "inspection"},
		{"PHOTO", "photo"},
		{"PACK", "packing"},
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, l := range locs {
		if _, err := tx.Exec(`
			INSERT INTO locations(id, code, zone)
			VALUES(?, ?, ?)
			ON CONFLICT(code) DO NOTHING
		`, "loc-"+l.Code, l.Code, l.Zone); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// seedUsers ensures a seller, two staff and one admin exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-seller1", "seller@nexusops.test", "Kimura Trading", "SELLER", "Passw0rd!"),
		mk("u-staff1", "staff1@nexusops.test", "Tanaka", "STAFF", "Passw0rd!"),
		mk("u-staff2", "staff2@nexusops.test", "Sato", "STAFF", "Passw0rd!"),
		mk("u-admin", "admin@nexusops.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products/shipments")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,sku,category,condition,purchase_price,status,seller_id) VALUES
	  ('TWD-2024-001','Canon EOS R5 Body','CAM-001','camera','A',320000,'listing','u-seller1'),
	  ('TWD-2024-002','Sony FE 24-70mm F2.8 GM','LENS-001','lens','A',180000,'storage','u-seller1'),
	  ('TWD-2024-003','Nikon Z9 Body','CAM-003','camera','B',410000,'sold','u-seller1'),
	  ('TWD-2024-004','Rolex Datejust 41','WAT-001','watch','A',950000,'inbound','u-seller1')`)

	tx.MustExec(`INSERT INTO shipments(id,product_id,status,carrier,tracking_number,notes,sold_at) VALUES
	  ('SHP-001','TWD-2024-003','sold','fedex','FX123456789JP','bundle:BNDL-2024-07','2024-01-20T10:00:00Z'),
	  ('SHP-002','TWD-2024-001','preparing','','','',NULL)`)

	return tx.Commit()
}
