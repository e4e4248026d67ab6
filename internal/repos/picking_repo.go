package repos

import (
	"nexusops/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PickingRepo struct{ DB *sqlx.DB }

func NewPickingRepo(db *sqlx.DB) *PickingRepo { return &PickingRepo{DB: db} }

const taskCols = `
  id, product_id, shipment_id, location_code, status, COALESCE(assignee,'') AS assignee,
  created_at, COALESCE(completed_at,'') AS completed_at`

func (r *PickingRepo) Get(id string) (domain.PickingTask, error) {
	var t domain.PickingTask
	err := r.DB.Get(&t, `SELECT `+taskCols+` FROM picking_tasks WHERE id = ?`, id)
	return t, err
}

func (r *PickingRepo) List(status string) ([]domain.PickingTask, error) {
	q := `SELECT ` + taskCols + ` FROM picking_tasks`
	args := []any{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY datetime(created_at) DESC`

	var out []domain.PickingTask
	err := r.DB.Select(&out, q, args...)
	return out, err
}

// OpenCascade creates the task and its parcel, and moves the product into the
// outbound flow, in one transaction.
func (r *PickingRepo) OpenCascade(t domain.PickingTask, s domain.Shipment) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO shipments(id, product_id, status, notes)
	  VALUES(?, ?, ?, ?)
	`, s.ID, s.ProductID, s.Status, s.Notes); err != nil {
		return err
	}

	if _, err := tx.Exec(`
	  INSERT INTO picking_tasks(id, product_id, shipment_id, location_code, status, assignee)
	  VALUES(?, ?, ?, ?, 'pending', NULLIF(?, ''))
	`, t.ID, t.ProductID, s.ID, t.LocationCode, t.Assignee); err != nil {
		return err
	}

	return tx.Commit()
}

// CompleteCascade closes the task, moves the product to shipping and stamps
// the parcel with its tracking number and label file, atomically.
func (r *PickingRepo) CompleteCascade(taskID, productID, shipmentID, carrier, tracking, labelFile string) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  UPDATE picking_tasks
	  SET status = 'completed', completed_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, taskID); err != nil {
		return err
	}

	if _, err := tx.Exec(`
	  UPDATE products SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, domain.StatusShipping, productID); err != nil {
		return err
	}

	if _, err := tx.Exec(`
	  UPDATE shipments
	  SET status = ?, carrier = ?, tracking_number = ?, label_file = ?,
	      updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, domain.ShipmentShipping, carrier, tracking, labelFile, shipmentID); err != nil {
		return err
	}

	return tx.Commit()
}
