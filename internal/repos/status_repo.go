package repos

import (
	"nexusops/internal/domain"

	"github.com/jmoiron/sqlx"
)

type StatusRepo struct{ db *sqlx.DB }

func NewStatusRepo(db *sqlx.DB) *StatusRepo { return &StatusRepo{db: db} }

// List returns registry entries ordered by sort_order.
func (r *StatusRepo) List(includeInactive bool) ([]domain.Status, error) {
	q := `
	  SELECT id, key, name_ja, name_en, COALESCE(description,'') AS description,
	         sort_order, is_active, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM product_statuses`
	if !includeInactive {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY sort_order ASC`

	var out []domain.Status
	err := r.db.Select(&out, q)
	return out, err
}

func (r *StatusRepo) ByKey(key string) (domain.Status, error) {
	var s domain.Status
	err := r.db.Get(&s, `
	  SELECT id, key, name_ja, name_en, COALESCE(description,'') AS description,
	         sort_order, is_active, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM product_statuses WHERE key = ?
	`, key)
	return s, err
}

func (r *StatusRepo) ByID(id string) (domain.Status, error) {
	var s domain.Status
	err := r.db.Get(&s, `
	  SELECT id, key, name_ja, name_en, COALESCE(description,'') AS description,
	         sort_order, is_active, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM product_statuses WHERE id = ?
	`, id)
	return s, err
}

func (r *StatusRepo) Create(s domain.Status) error {
	_, err := r.db.Exec(`
	  INSERT INTO product_statuses(id, key, name_ja, name_en, description, sort_order, is_active)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Key, s.NameJA, s.NameEN, s.Description, s.SortOrder, boolToInt(s.Active))
	return err
}

func (r *StatusRepo) Update(s domain.Status) error {
	_, err := r.db.Exec(`
	  UPDATE product_statuses
	  SET key = ?, name_ja = ?, name_en = ?, description = ?, sort_order = ?, is_active = ?,
	      updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, s.Key, s.NameJA, s.NameEN, s.Description, s.SortOrder, boolToInt(s.Active), s.ID)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
