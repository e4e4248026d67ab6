package services

import (
	"database/sql"
	"errors"

	"nexusops/internal/domain"
	"nexusops/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrTransitionDenied surfaces a sale event on a product whose current
	// status has no sale successor (anything but listing/sold).
	ErrTransitionDenied = errors.New("transition denied for current status")
)

// LifecycleService owns product status movement. The sale event is the fixed
// listing -> sold step; repeated calls on a sold product succeed without
// touching any rows.
type LifecycleService struct {
	Products *repos.ProductRepo
}

func NewLifecycleService(products *repos.ProductRepo) *LifecycleService {
	return &LifecycleService{Products: products}
}

type SaleResult struct {
	ProductID string `json:"productId"`
	NewStatus string `json:"newStatus"`
	// Changed is false on the idempotent re-call case.
	Changed bool `json:"changed"`
}

func (s *LifecycleService) Sell(productID string) (SaleResult, error) {
	p, err := s.Products.Get(productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return SaleResult{}, ErrProductNotFound
		}
		return SaleResult{}, err
	}

	next, terr := domain.SaleSuccessor(p.Status)
	switch {
	case terr == nil:
		// fall through to the cascade
	case errors.Is(terr, domain.ErrAlreadySold):
		return SaleResult{ProductID: p.ID, NewStatus: domain.StatusSold, Changed: false}, nil
	default:
		return SaleResult{}, ErrTransitionDenied
	}

	if err := s.Products.SellCascade(p, uuid.NewString(), uuid.NewString()); err != nil {
		if errors.Is(err, domain.ErrBadTransition) {
			// Lost a race: the status moved between the read and the cascade.
			if cur, gerr := s.Products.Get(p.ID); gerr == nil && cur.Status == domain.StatusSold {
				return SaleResult{ProductID: p.ID, NewStatus: domain.StatusSold, Changed: false}, nil
			}
			return SaleResult{}, ErrTransitionDenied
		}
		return SaleResult{}, err
	}
	return SaleResult{ProductID: p.ID, NewStatus: next, Changed: true}, nil
}
