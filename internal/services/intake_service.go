package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nexusops/internal/domain"
	applog "nexusops/internal/log"
	"nexusops/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrPlanNotFound  = errors.New("delivery plan not found")
	ErrPlanNotDraft  = errors.New("delivery plan is not a draft")
	ErrPlanForbidden = errors.New("delivery plan belongs to another seller")
)

// PlanLine is one declared product in an intake batch.
type PlanLine struct {
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Category      string  `json:"category"`
	Condition     string  `json:"condition"`
	PurchasePrice float64 `json:"purchasePrice"`
}

// DraftInput mirrors the wizard payload. Validation is deliberately loose for
// drafts; submission is where lines must be present.
type DraftInput struct {
	DeliveryAddress string     `json:"deliveryAddress"`
	ContactEmail    string     `json:"contactEmail"`
	Notes           string     `json:"notes"`
	Products        []PlanLine `json:"products"`
}

type IntakeService struct {
	Plans  *repos.PlanRepo
	Notifs *NotificationService
}

func NewIntakeService(plans *repos.PlanRepo, notifs *NotificationService) *IntakeService {
	return &IntakeService{Plans: plans, Notifs: notifs}
}

// SaveDraft stores the wizard payload with server-computed totals.
func (s *IntakeService) SaveDraft(seller *domain.User, in DraftInput) (domain.DeliveryPlan, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return domain.DeliveryPlan{}, err
	}

	total := 0.0
	for _, line := range in.Products {
		if line.PurchasePrice > 0 {
			total += line.PurchasePrice
		}
	}

	addr := in.DeliveryAddress
	if addr == "" {
		addr = "unspecified"
	}
	email := in.ContactEmail
	if email == "" {
		email = seller.Email
	}

	id := fmt.Sprintf("DRAFT-%d-%s", time.Now().Unix(), uuid.NewString()[:8])
	plan := domain.DeliveryPlan{
		ID:              id,
		PlanNumber:      id,
		SellerID:        seller.ID,
		SellerName:      seller.Name,
		Status:          "draft",
		DeliveryAddress: addr,
		ContactEmail:    email,
		TotalItems:      len(in.Products),
		TotalValue:      total,
		DraftJSON:       string(raw),
	}
	if err := s.Plans.CreateDraft(plan); err != nil {
		return domain.DeliveryPlan{}, err
	}
	return plan, nil
}

// Submit turns a draft into inbound products. The plan flip and the product
// inserts commit together or not at all.
func (s *IntakeService) Submit(seller *domain.User, planID string) (domain.DeliveryPlan, []string, error) {
	plan, err := s.loadOwned(seller, planID)
	if err != nil {
		return domain.DeliveryPlan{}, nil, err
	}
	if plan.Status != "draft" {
		return domain.DeliveryPlan{}, nil, ErrPlanNotDraft
	}

	var in DraftInput
	if err := json.Unmarshal([]byte(plan.DraftJSON), &in); err != nil {
		return domain.DeliveryPlan{}, nil, err
	}
	if len(in.Products) == 0 {
		return domain.DeliveryPlan{}, nil, errors.New("plan has no products")
	}

	products := make([]domain.Product, 0, len(in.Products))
	ids := make([]string, 0, len(in.Products))
	for _, line := range in.Products {
		id := "TWD-" + uuid.NewString()[:13]
		ids = append(ids, id)
		products = append(products, domain.Product{
			ID:            id,
			Name:          line.Name,
			SKU:           line.SKU,
			Category:      line.Category,
			Condition:     line.Condition,
			PurchasePrice: line.PurchasePrice,
			Status:        domain.StatusInbound,
			SellerID:      seller.ID,
		})
	}

	if err := s.Plans.SubmitCascade(plan.ID, products); err != nil {
		return domain.DeliveryPlan{}, nil, err
	}

	if s.Notifs != nil {
		// The plan is already committed; a failed notification is logged, not
		// surfaced to the seller.
		if _, err := s.Notifs.Notify(seller.ID, "plan_submitted", "Delivery plan submitted",
			fmt.Sprintf("Plan %s with %d item(s) was submitted.", plan.PlanNumber, len(ids)), "normal"); err != nil {
			applog.Error(nil, "plan.submit.notify.fail", err, map[string]any{"plan_id": plan.ID})
		}
	}

	plan.Status = "submitted"
	return plan, ids, nil
}

// ListPlans returns the seller's own plans, newest first.
func (s *IntakeService) ListPlans(seller *domain.User) ([]domain.DeliveryPlan, error) {
	out, err := s.Plans.ListBySeller(seller.ID)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if out == nil {
		out = []domain.DeliveryPlan{}
	}
	return out, nil
}

// Cancel is only allowed while the plan is still a draft.
func (s *IntakeService) Cancel(seller *domain.User, planID string) error {
	plan, err := s.loadOwned(seller, planID)
	if err != nil {
		return err
	}
	if plan.Status != "draft" {
		return ErrPlanNotDraft
	}
	return s.Plans.UpdateStatus(plan.ID, "cancelled")
}

func (s *IntakeService) loadOwned(seller *domain.User, planID string) (domain.DeliveryPlan, error) {
	plan, err := s.Plans.Get(planID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.DeliveryPlan{}, ErrPlanNotFound
		}
		return domain.DeliveryPlan{}, err
	}
	if seller.Role != "ADMIN" && plan.SellerID != seller.ID {
		return domain.DeliveryPlan{}, ErrPlanForbidden
	}
	return plan, nil
}
