package services

import (
	"context"
	"strings"

	"printshop-backend/models"
	"printshop-backend/store"
	"printshop-backend/utils"

	"go.uber.org/zap"
)

type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

// UpdateCustomerRequest is a partial update. Order aggregates are owned by
// the ledger and cannot be set here.
type UpdateCustomerRequest struct {
	Name  *string `json:"name" validate:"omitnil,min=1"`
	Phone *string `json:"phone" validate:"omitnil,phone"`
	Email *string `json:"email"`
}

type CustomerService struct {
	repo store.Repository
	log  *zap.Logger
}

func NewCustomerService(repo store.Repository, log *zap.Logger) *CustomerService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CustomerService{repo: repo, log: log}
}

// List matches search against name and email ignoring case, and against the
// phone number as a plain substring.
func (s *CustomerService) List(ctx context.Context, search string) ([]models.Customer, error) {
	all, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	search = strings.TrimSpace(search)
	if search == "" {
		return all, nil
	}
	out := make([]models.Customer, 0, len(all))
	for _, c := range all {
		if utils.ContainsFold(c.Name, search) ||
			utils.ContainsFold(c.Email, search) ||
			strings.Contains(c.Phone, search) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (models.Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (models.Customer, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(req); err != nil {
		return models.Customer{}, err
	}

	created, err := s.repo.CreateCustomer(ctx, models.Customer{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: timeNow(),
	})
	if err != nil {
		return models.Customer{}, err
	}
	s.log.Info("customer created", zap.String("customer_id", created.ID))
	return created, nil
}

func (s *CustomerService) Update(ctx context.Context, id string, req UpdateCustomerRequest) (models.Customer, error) {
	for _, field := range []**string{&req.Name, &req.Phone, &req.Email} {
		if *field != nil {
			trimmed := strings.TrimSpace(**field)
			*field = &trimmed
		}
	}
	if err := validateStruct(req); err != nil {
		return models.Customer{}, err
	}
	// An empty email clears it.
	if req.Email != nil && *req.Email != "" {
		if err := validate.Var(*req.Email, "email"); err != nil {
			return models.Customer{}, validationErr("email is not a valid email address")
		}
	}
	return s.repo.UpdateCustomer(ctx, id, store.CustomerPatch{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
}

// Delete removes the customer. Orders keep their customer name snapshot.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	s.log.Info("customer deleted", zap.String("customer_id", id))
	return nil
}
