package repos

import (
	"nexusops/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PlanRepo struct{ DB *sqlx.DB }

func NewPlanRepo(db *sqlx.DB) *PlanRepo { return &PlanRepo{DB: db} }

const planCols = `
  id, plan_number, seller_id, seller_name, status, delivery_address, contact_email,
  total_items, total_value, COALESCE(draft_json,'') AS draft_json,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *PlanRepo) Get(id string) (domain.DeliveryPlan, error) {
	var p domain.DeliveryPlan
	err := r.DB.Get(&p, `SELECT `+planCols+` FROM delivery_plans WHERE id = ?`, id)
	return p, err
}

func (r *PlanRepo) ListBySeller(sellerID string) ([]domain.DeliveryPlan, error) {
	var out []domain.DeliveryPlan
	err := r.DB.Select(&out, `
	  SELECT `+planCols+` FROM delivery_plans
	  WHERE seller_id = ?
	  ORDER BY datetime(created_at) DESC
	`, sellerID)
	return out, err
}

func (r *PlanRepo) CreateDraft(p domain.DeliveryPlan) error {
	_, err := r.DB.Exec(`
	  INSERT INTO delivery_plans
	    (id, plan_number, seller_id, seller_name, status, delivery_address, contact_email,
	     total_items, total_value, draft_json)
	  VALUES(?, ?, ?, ?, 'draft', ?, ?, ?, ?, ?)
	`, p.ID, p.PlanNumber, p.SellerID, p.SellerName, p.DeliveryAddress, p.ContactEmail,
		p.TotalItems, p.TotalValue, p.DraftJSON)
	return err
}

func (r *PlanRepo) UpdateStatus(id, status string) error {
	_, err := r.DB.Exec(`
	  UPDATE delivery_plans SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, status, id)
	return err
}

// SubmitCascade flips the draft to submitted and creates one inbound product
// per declared line, atomically.
func (r *PlanRepo) SubmitCascade(planID string, products []domain.Product) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  UPDATE delivery_plans SET status = 'submitted', updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, planID); err != nil {
		return err
	}

	for _, p := range products {
		if _, err := tx.Exec(`
		  INSERT INTO products(id, name, sku, category, condition, purchase_price, status, seller_id)
		  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.Name, p.SKU, p.Category, p.Condition, p.PurchasePrice, p.Status, p.SellerID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
