package store

import (
	"context"
	"errors"
	"fmt"

	"printshop-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const invoiceSequenceName = "invoice"

// GormStore keeps the catalog, customers and ledger in a SQL database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the schema and makes sure the invoice counter row
// exists before returning.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(
		&models.Service{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.InvoiceSequence{},
	); err != nil {
		return nil, persistErr("migrate", err)
	}
	seq := models.InvoiceSequence{Name: invoiceSequenceName}
	if err := db.FirstOrCreate(&seq, models.InvoiceSequence{Name: invoiceSequenceName}).Error; err != nil {
		return nil, persistErr("init invoice sequence", err)
	}
	return &GormStore{db: db}, nil
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}

func lookupErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return persistErr(op, err)
}

// Ids are uuid columns; anything that does not parse cannot exist.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (s *GormStore) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&services).Error; err != nil {
		return nil, persistErr("list services", err)
	}
	return services, nil
}

func (s *GormStore) GetService(ctx context.Context, id string) (models.Service, error) {
	var svc models.Service
	if !validID(id) {
		return svc, ErrNotFound
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&svc).Error; err != nil {
		return svc, lookupErr("get service", err)
	}
	return svc, nil
}

func (s *GormStore) CreateService(ctx context.Context, svc models.Service) (models.Service, error) {
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	// Select keeps an explicit false IsActive from being replaced by the
	// column default.
	if err := s.db.WithContext(ctx).Select("*").Create(&svc).Error; err != nil {
		return models.Service{}, persistErr("create service", err)
	}
	return svc, nil
}

func (s *GormStore) UpdateService(ctx context.Context, id string, patch ServicePatch) (models.Service, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return svc, err
	}
	patch.apply(&svc)
	if err := s.db.WithContext(ctx).Save(&svc).Error; err != nil {
		return models.Service{}, persistErr("update service", err)
	}
	return svc, nil
}

func (s *GormStore) DeleteService(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Service{})
	if result.Error != nil {
		return persistErr("delete service", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, persistErr("list customers", err)
	}
	return customers, nil
}

func (s *GormStore) CountCustomers(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Customer{}).Count(&n).Error; err != nil {
		return 0, persistErr("count customers", err)
	}
	return int(n), nil
}

func (s *GormStore) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	var c models.Customer
	if !validID(id) {
		return c, ErrNotFound
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return c, lookupErr("get customer", err)
	}
	return c, nil
}

func (s *GormStore) CreateCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return models.Customer{}, persistErr("create customer", err)
	}
	return c, nil
}

func (s *GormStore) UpdateCustomer(ctx context.Context, id string, patch CustomerPatch) (models.Customer, error) {
	c, err := s.GetCustomer(ctx, id)
	if err != nil {
		return c, err
	}
	patch.apply(&c)
	// Aggregates belong to the ledger; only the editable columns are written.
	if err := s.db.WithContext(ctx).Model(&c).Select("name", "phone", "email").Updates(&c).Error; err != nil {
		return models.Customer{}, persistErr("update customer", err)
	}
	return c, nil
}

func (s *GormStore) DeleteCustomer(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Customer{})
	if result.Error != nil {
		return persistErr("delete customer", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := withItems(s.db.WithContext(ctx)).Order("sequence DESC").Find(&orders).Error; err != nil {
		return nil, persistErr("list orders", err)
	}
	return orders, nil
}

func (s *GormStore) GetOrder(ctx context.Context, id string) (models.Order, error) {
	var o models.Order
	if !validID(id) {
		return o, ErrNotFound
	}
	if err := withItems(s.db.WithContext(ctx)).Where("id = ?", id).First(&o).Error; err != nil {
		return o, lookupErr("get order", err)
	}
	return o, nil
}

func (s *GormStore) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	order = cloneOrder(order)
	order.ID = uuid.NewString()
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		order.Items[i].Position = i
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.NewString()
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq models.InvoiceSequence
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", invoiceSequenceName).First(&seq).Error; err != nil {
			return persistErr("lock invoice sequence", err)
		}
		seq.Value++
		if err := tx.Model(&seq).Update("value", seq.Value).Error; err != nil {
			return persistErr("advance invoice sequence", err)
		}
		order.Sequence = seq.Value
		order.InvoiceNo = InvoiceNumber(order.CreatedAt, order.Sequence)

		var customer models.Customer
		known := false
		if validID(order.CustomerID) {
			err := tx.Where("id = ?", order.CustomerID).First(&customer).Error
			switch {
			case err == nil:
				known = true
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return persistErr("load customer", err)
			}
		}
		if known {
			order.CustomerName = customer.Name
		} else {
			order.CustomerName = UnknownCustomerName
		}

		if err := tx.Create(&order).Error; err != nil {
			return persistErr("create order", err)
		}

		if !known {
			return nil
		}
		if err := tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
			Updates(map[string]interface{}{
				"total_orders": gorm.Expr("total_orders + ?", 1),
				"total_spent":  gorm.Expr("ROUND(total_spent + ?, 2)", order.Total),
			}).Error; err != nil {
			return persistErr("update customer stats", err)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *GormStore) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, allow TransitionFunc) (models.Order, error) {
	if !validID(id) {
		return models.Order{}, ErrNotFound
	}
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := withItems(tx).Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&order).Error; err != nil {
			return lookupErr("get order", err)
		}
		if allow != nil {
			if err := allow(order.Status, status); err != nil {
				return err
			}
		}
		if order.Status == status {
			return nil
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error; err != nil {
			return persistErr("update order status", err)
		}
		order.Status = status
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *GormStore) DeleteOrder(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&order).Error; err != nil {
			return lookupErr("get order", err)
		}

		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return persistErr("delete order items", err)
		}
		if err := tx.Delete(&order).Error; err != nil {
			return persistErr("delete order", err)
		}

		if !validID(order.CustomerID) {
			return nil
		}
		if err := tx.Model(&models.Customer{}).Where("id = ?", order.CustomerID).
			Updates(map[string]interface{}{
				"total_orders": gorm.Expr("GREATEST(total_orders - 1, 0)"),
				"total_spent":  gorm.Expr("GREATEST(ROUND(total_spent - ?, 2), 0)", order.Total),
			}).Error; err != nil {
			return persistErr("reverse customer stats", err)
		}
		return nil
	})
}
