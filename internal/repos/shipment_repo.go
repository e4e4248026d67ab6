package repos

import (
	"nexusops/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ShipmentRepo struct{ db *sqlx.DB }

func NewShipmentRepo(db *sqlx.DB) *ShipmentRepo { return &ShipmentRepo{db: db} }

const shipmentCols = `
  id, product_id, status, COALESCE(carrier,'') AS carrier,
  COALESCE(tracking_number,'') AS tracking_number, COALESCE(label_file,'') AS label_file,
  COALESCE(notes,'') AS notes, COALESCE(sold_at,'') AS sold_at,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ShipmentRepo) Get(id string) (domain.Shipment, error) {
	var s domain.Shipment
	err := r.db.Get(&s, `SELECT `+shipmentCols+` FROM shipments WHERE id = ?`, id)
	return s, err
}

func (r *ShipmentRepo) ListByProduct(productID string) ([]domain.Shipment, error) {
	var out []domain.Shipment
	err := r.db.Select(&out, `
	  SELECT `+shipmentCols+` FROM shipments
	  WHERE product_id = ?
	  ORDER BY created_at DESC
	`, productID)
	return out, err
}

