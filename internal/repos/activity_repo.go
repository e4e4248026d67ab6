package repos

import (
	"nexusops/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ActivityRepo struct{ db *sqlx.DB }

func NewActivityRepo(db *sqlx.DB) *ActivityRepo { return &ActivityRepo{db: db} }

func (r *ActivityRepo) ListByProduct(productID string, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []domain.Activity
	err := r.db.Select(&out, `
	  SELECT id, type, description, user_id, COALESCE(product_id,'') AS product_id,
	         COALESCE(metadata_json,'') AS metadata_json, created_at
	  FROM activities
	  WHERE product_id = ?
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, productID, limit)
	return out, err
}

func (r *ActivityRepo) ListLatest(limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Activity
	err := r.db.Select(&out, `
	  SELECT id, type, description, user_id, COALESCE(product_id,'') AS product_id,
	         COALESCE(metadata_json,'') AS metadata_json, created_at
	  FROM activities
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}
