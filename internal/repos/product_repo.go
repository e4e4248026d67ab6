package repos

import (
	"nexusops/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ DB *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{DB: db} }

const productCols = `
  id, name, COALESCE(sku,'') AS sku, COALESCE(category,'') AS category,
  COALESCE(condition,'') AS condition, purchase_price, status, seller_id,
  COALESCE(location_id,'') AS location_id,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.DB.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) List(status string, limit, offset int) ([]domain.Product, error) {
	q := `SELECT ` + productCols + ` FROM products`
	args := []any{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.DB.Select(&out, q, args...)
	return out, err
}

func (r *ProductRepo) Count(status string) (int, error) {
	var n int
	if status == "" {
		return n, r.DB.Get(&n, `SELECT COUNT(*) FROM products`)
	}
	return n, r.DB.Get(&n, `SELECT COUNT(*) FROM products WHERE status = ?`, status)
}

// SellCascade performs the sale transition atomically: product -> sold, every
// shipment for the product -> sold with a sold timestamp, an activity row, and
// a label-request notification for the owning seller. Any failure rolls the
// whole set back. The status guard runs inside the transaction, so a
// concurrent caller that lost the race gets domain.ErrBadTransition instead
// of a duplicated cascade.
func (r *ProductRepo) SellCascade(p domain.Product, activityID, notificationID string) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  UPDATE products SET status = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND status = ?
	`, domain.StatusSold, p.ID, domain.StatusListing)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrBadTransition
	}

	if _, err := tx.Exec(`
	  UPDATE shipments
	  SET status = ?, sold_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
	  WHERE product_id = ?
	`, domain.ShipmentSold, p.ID); err != nil {
		return err
	}

	if _, err := tx.Exec(`
	  INSERT INTO activities(id, type, description, user_id, product_id, metadata_json)
	  VALUES(?, 'status_transition', ?, 'system', ?, ?)
	`, activityID,
		`Product "`+p.Name+`" moved from `+domain.StatusListing+` to `+domain.StatusSold,
		p.ID,
		`{"from":"`+domain.StatusListing+`","to":"`+domain.StatusSold+`"}`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
	  INSERT INTO notifications(id, user_id, type, title, message, read, priority)
	  VALUES(?, ?, 'product_sold', ?, ?, 0, 'high')
	`, notificationID, p.SellerID,
		"Label request",
		`Product "`+p.Name+`" sold. Please generate a shipping label.`); err != nil {
		return err
	}

	return tx.Commit()
}

// StoreCascade assigns a shelf and moves the product to storage in one
// transaction, recording the inventory movement.
func (r *ProductRepo) StoreCascade(productID, locationID, locationCode, userID, activityID string) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  UPDATE products
	  SET status = ?, location_id = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, domain.StatusStorage, locationID, productID); err != nil {
		return err
	}

	if _, err := tx.Exec(`
	  INSERT INTO activities(id, type, description, user_id, product_id, metadata_json)
	  VALUES(?, 'inventory_movement', ?, ?, ?, ?)
	`, activityID, "Stored at "+locationCode, userID, productID,
		`{"locationCode":"`+locationCode+`"}`); err != nil {
		return err
	}

	return tx.Commit()
}
