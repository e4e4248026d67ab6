package repos

import (
	"nexusops/internal/domain"

	"github.com/jmoiron/sqlx"
)

type LocationRepo struct{ db *sqlx.DB }

func NewLocationRepo(db *sqlx.DB) *LocationRepo { return &LocationRepo{db: db} }

func (r *LocationRepo) ByCode(code string) (domain.Location, error) {
	var l domain.Location
	err := r.db.Get(&l, `
	  SELECT id, code, zone, capacity, created_at FROM locations WHERE code = ?
	`, code)
	return l, err
}

func (r *LocationRepo) ListAll() ([]domain.Location, error) {
	var out []domain.Location
	err := r.db.Select(&out, `
	  SELECT id, code, zone, capacity, created_at FROM locations ORDER BY code
	`)
	return out, err
}

// Occupancy counts products currently assigned to the location.
func (r *LocationRepo) Occupancy(locationID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE location_id = ?`, locationID)
	return n, err
}
