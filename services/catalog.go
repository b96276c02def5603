package services

import (
	"context"
	"strings"

	"printshop-backend/models"
	"printshop-backend/store"
	"printshop-backend/utils"

	"go.uber.org/zap"
)

const defaultUnitType = "unit"

type ServiceFilter struct {
	Search     string
	ActiveOnly bool
}

type CreateServiceRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	UnitType    string  `json:"unit_type"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateServiceRequest is a partial update; nil fields are left unchanged.
type UpdateServiceRequest struct {
	Name        *string  `json:"name" validate:"omitnil,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0"`
	UnitType    *string  `json:"unit_type"`
	IsActive    *bool    `json:"is_active"`
}

// CatalogService manages the services offered by the shop. Prices changed
// here never reach existing orders, which carry their own snapshots.
type CatalogService struct {
	repo store.Repository
	log  *zap.Logger
}

func NewCatalogService(repo store.Repository, log *zap.Logger) *CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogService{repo: repo, log: log}
}

func (s *CatalogService) List(ctx context.Context, filter ServiceFilter) ([]models.Service, error) {
	all, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	search := strings.TrimSpace(filter.Search)
	out := make([]models.Service, 0, len(all))
	for _, svc := range all {
		if filter.ActiveOnly && !svc.IsActive {
			continue
		}
		if search != "" && !utils.ContainsFold(svc.Name, search) && !utils.ContainsFold(svc.Description, search) {
			continue
		}
		out = append(out, svc)
	}
	return out, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (models.Service, error) {
	return s.repo.GetService(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, req CreateServiceRequest) (models.Service, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return models.Service{}, err
	}

	svc := models.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       utils.Round2(req.Price),
		UnitType:    strings.TrimSpace(req.UnitType),
		IsActive:    true,
		CreatedAt:   timeNow(),
	}
	if svc.UnitType == "" {
		svc.UnitType = defaultUnitType
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	created, err := s.repo.CreateService(ctx, svc)
	if err != nil {
		return models.Service{}, err
	}
	s.log.Info("service created", zap.String("service_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, req UpdateServiceRequest) (models.Service, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err := validateStruct(req); err != nil {
		return models.Service{}, err
	}
	if req.Price != nil {
		price := utils.Round2(*req.Price)
		req.Price = &price
	}
	if req.UnitType != nil && strings.TrimSpace(*req.UnitType) == "" {
		unit := defaultUnitType
		req.UnitType = &unit
	}
	return s.repo.UpdateService(ctx, id, store.ServicePatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		UnitType:    req.UnitType,
		IsActive:    req.IsActive,
	})
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteService(ctx, id); err != nil {
		return err
	}
	s.log.Info("service deleted", zap.String("service_id", id))
	return nil
}
