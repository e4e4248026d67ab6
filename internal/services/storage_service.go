package services

import (
	"database/sql"
	"errors"

	"nexusops/internal/domain"
	"nexusops/internal/repos"
	"nexusops/internal/validate"

	"github.com/google/uuid"
)

var (
	ErrBadLocation  = errors.New("invalid location code")
	ErrLocationFull = errors.New("location at capacity")
	ErrNotStorable  = errors.New("product cannot be stored from its current status")
	ErrUnknownShelf = errors.New("location not registered")
)

type StorageService struct {
	Products  *repos.ProductRepo
	Locations *repos.LocationRepo
}

func NewStorageService(products *repos.ProductRepo, locations *repos.LocationRepo) *StorageService {
	return &StorageService{Products: products, Locations: locations}
}

// ValidateCode checks a shelf code against the curated pattern set without
// touching the product.
func (s *StorageService) ValidateCode(code string) (string, bool) {
	return validate.LocationCode(code)
}

// Store assigns the product to a shelf and moves it to storage.
func (s *StorageService) Store(productID, locationCode, userID string) (domain.Product, error) {
	code, ok := validate.LocationCode(locationCode)
	if !ok {
		return domain.Product{}, ErrBadLocation
	}

	p, err := s.Products.Get(productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, err
	}
	if !domain.Storable(p.Status) {
		return domain.Product{}, ErrNotStorable
	}

	loc, err := s.Locations.ByCode(code)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Product{}, ErrUnknownShelf
		}
		return domain.Product{}, err
	}

	occ, err := s.Locations.Occupancy(loc.ID)
	if err != nil {
		return domain.Product{}, err
	}
	if occ >= loc.Capacity {
		return domain.Product{}, ErrLocationFull
	}

	if err := s.Products.StoreCascade(p.ID, loc.ID, loc.Code, userID, uuid.NewString()); err != nil {
		return domain.Product{}, err
	}

	p.Status = domain.StatusStorage
	p.LocationID = loc.ID
	return p, nil
}
