package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"nexusops/internal/domain"
	"nexusops/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrNotPickable  = errors.New("product is not awaiting picking")
	ErrTaskNotFound = errors.New("picking task not found")
	ErrTaskDone     = errors.New("picking task already completed")
)

type PickingService struct {
	Tasks     *repos.PickingRepo
	Products  *repos.ProductRepo
	Locations *repos.LocationRepo
}

func NewPickingService(tasks *repos.PickingRepo, products *repos.ProductRepo, locations *repos.LocationRepo) *PickingService {
	return &PickingService{Tasks: tasks, Products: products, Locations: locations}
}

// Open creates a picking task for a sold product, together with its parcel.
// bundleID, when set, lands in the shipment notes so staff can pack several
// products into one box.
func (s *PickingService) Open(productID, assignee, bundleID string) (domain.PickingTask, error) {
	p, err := s.Products.Get(productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.PickingTask{}, ErrProductNotFound
		}
		return domain.PickingTask{}, err
	}
	if !domain.Pickable(p.Status) {
		return domain.PickingTask{}, ErrNotPickable
	}

	locCode := ""
	if p.LocationID != "" {
		if locs, err := s.Locations.ListAll(); err == nil {
			for _, l := range locs {
				if l.ID == p.LocationID {
					locCode = l.Code
					break
				}
			}
		}
	}

	notes := ""
	if bundleID != "" {
		notes = "bundle:" + bundleID
	}

	task := domain.PickingTask{
		ID:           "PICK-" + uuid.NewString()[:8],
		ProductID:    p.ID,
		LocationCode: locCode,
		Status:       "pending",
		Assignee:     assignee,
	}
	parcel := domain.Shipment{
		ID:        "SHP-" + uuid.NewString()[:8],
		ProductID: p.ID,
		Status:    domain.ShipmentPreparing,
		Notes:     notes,
	}

	if err := s.Tasks.OpenCascade(task, parcel); err != nil {
		return domain.PickingTask{}, err
	}
	task.ShipmentID = parcel.ID
	return task, nil
}

// Complete closes the task: product goes to shipping and the parcel gets its
// carrier tracking number.
func (s *PickingService) Complete(taskID, carrier string) (domain.PickingTask, error) {
	t, err := s.Tasks.Get(taskID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.PickingTask{}, ErrTaskNotFound
		}
		return domain.PickingTask{}, err
	}
	if t.Status == "completed" {
		return domain.PickingTask{}, ErrTaskDone
	}

	if carrier == "" {
		carrier = "fedex"
	}
	tracking := trackingNumber(carrier)
	labelFile := t.ShipmentID + ".pdf"

	if err := s.Tasks.CompleteCascade(t.ID, t.ProductID, t.ShipmentID, carrier, tracking, labelFile); err != nil {
		return domain.PickingTask{}, err
	}
	t.Status = "completed"
	return t, nil
}

func (s *PickingService) List(status string) ([]domain.PickingTask, error) {
	out, err := s.Tasks.List(status)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if out == nil {
		out = []domain.PickingTask{}
	}
	return out, nil
}

func trackingNumber(carrier string) string {
	prefix := map[string]string{"fedex": "FX", "dhl": "DHL", "yamato": "YMT"}[strings.ToLower(carrier)]
	if prefix == "" {
		prefix = "TRK"
	}
	return fmt.Sprintf("%s%dJP", prefix, time.Now().UnixNano()%1_000_000_000)
}
