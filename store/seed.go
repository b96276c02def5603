package store

import (
	"slices"
	"time"

	"printshop-backend/models"
	"printshop-backend/utils"

	"github.com/google/uuid"
)

type seedOrderSpec struct {
	customer int
	status   models.OrderStatus
	method   models.PaymentMethod
	notes    string
	daysAgo  int
	items    [][2]int // service index, quantity
}

// NewSeededMemoryStore returns a MemoryStore holding the demo catalog,
// customers and the last ten days of orders relative to now.
func NewSeededMemoryStore(now time.Time) *MemoryStore {
	s := NewMemoryStore()

	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
	}

	services := []models.Service{
		{Name: "B&W Copy (A4)", Description: "Black and white photocopy, A4 size", Price: 0.10, UnitType: "page", IsActive: true, CreatedAt: day(2024, 1, 15)},
		{Name: "Color Copy (A4)", Description: "Full color photocopy, A4 size", Price: 0.50, UnitType: "page", IsActive: true, CreatedAt: day(2024, 1, 15)},
		{Name: "B&W Copy (A3)", Description: "Black and white photocopy, A3 size", Price: 0.20, UnitType: "page", IsActive: true, CreatedAt: day(2024, 1, 16)},
		{Name: "Color Copy (A3)", Description: "Full color photocopy, A3 size", Price: 1.00, UnitType: "page", IsActive: true, CreatedAt: day(2024, 1, 16)},
		{Name: "Lamination (A4)", Description: "Document lamination, A4 size", Price: 2.00, UnitType: "sheet", IsActive: true, CreatedAt: day(2024, 1, 17)},
		{Name: "Spiral Binding", Description: "Spiral binding for documents", Price: 3.50, UnitType: "piece", IsActive: true, CreatedAt: day(2024, 1, 17)},
		{Name: "Document Scanning", Description: "High-quality document scanning", Price: 0.15, UnitType: "page", IsActive: true, CreatedAt: day(2024, 1, 18)},
		{Name: "ID Photo Print", Description: "Passport/ID photo printing", Price: 5.00, UnitType: "set", IsActive: true, CreatedAt: day(2024, 1, 18)},
		{Name: "Banner Printing", Description: "Large format banner printing", Price: 15.00, UnitType: "sq ft", IsActive: false, CreatedAt: day(2024, 1, 19)},
		{Name: "Business Cards", Description: "Professional business card printing", Price: 25.00, UnitType: "100 pcs", IsActive: true, CreatedAt: day(2024, 1, 19)},
	}
	for i := range services {
		services[i].ID = uuid.NewString()
	}

	customers := []models.Customer{
		{Name: "John Smith", Phone: "555-0101", Email: "john@email.com", TotalOrders: 12, TotalSpent: 156.50, CreatedAt: day(2024, 2, 1)},
		{Name: "Sarah Johnson", Phone: "555-0102", Email: "sarah@email.com", TotalOrders: 8, TotalSpent: 95.20, CreatedAt: day(2024, 2, 5)},
		{Name: "Michael Chen", Phone: "555-0103", Email: "mchen@email.com", TotalOrders: 15, TotalSpent: 312.00, CreatedAt: day(2024, 2, 10)},
		{Name: "Emily Davis", Phone: "555-0104", Email: "emily.d@email.com", TotalOrders: 5, TotalSpent: 42.80, CreatedAt: day(2024, 2, 15)},
		{Name: "David Wilson", Phone: "555-0105", Email: "dwilson@email.com", TotalOrders: 20, TotalSpent: 478.60, CreatedAt: day(2024, 3, 1)},
		{Name: "Lisa Anderson", Phone: "555-0106", Email: "lisa.a@email.com", TotalOrders: 3, TotalSpent: 28.50, CreatedAt: day(2024, 3, 10)},
		{Name: "Robert Taylor", Phone: "555-0107", Email: "rtaylor@email.com", TotalOrders: 9, TotalSpent: 167.90, CreatedAt: day(2024, 3, 15)},
		{Name: "Jennifer Brown", Phone: "555-0108", Email: "jbrown@email.com", TotalOrders: 6, TotalSpent: 89.30, CreatedAt: day(2024, 4, 1)},
		{Name: "James Martinez", Phone: "555-0109", Email: "jmartinez@email.com", TotalOrders: 11, TotalSpent: 234.10, CreatedAt: day(2024, 4, 5)},
		{Name: "Amanda Garcia", Phone: "555-0110", Email: "agarcia@email.com", TotalOrders: 7, TotalSpent: 128.70, CreatedAt: day(2024, 4, 10)},
	}
	for i := range customers {
		customers[i].ID = uuid.NewString()
	}

	// Lists are newest first.
	slices.Reverse(services)
	slices.Reverse(customers)
	s.services = services
	s.customers = customers

	// Indexes below refer to the original (oldest first) catalog order.
	svc := func(i int) models.Service { return services[len(services)-1-i] }
	cust := func(i int) models.Customer { return customers[len(customers)-1-i] }

	orders := []seedOrderSpec{
		{0, models.OrderStatusCompleted, models.PaymentCash, "", 0, [][2]int{{0, 50}, {4, 3}}},
		{2, models.OrderStatusCompleted, models.PaymentCard, "Rush order", 0, [][2]int{{1, 20}, {5, 2}}},
		{4, models.OrderStatusCompleted, models.PaymentTransfer, "", 1, [][2]int{{0, 100}, {1, 30}, {5, 1}}},
		{1, models.OrderStatusPending, models.PaymentCash, "Pickup tomorrow", 1, [][2]int{{7, 2}, {0, 10}}},
		{6, models.OrderStatusCompleted, models.PaymentCash, "", 2, [][2]int{{3, 15}, {4, 5}}},
		{3, models.OrderStatusCancelled, models.PaymentCard, "Customer changed mind", 2, [][2]int{{1, 10}}},
		{8, models.OrderStatusCompleted, models.PaymentCash, "", 3, [][2]int{{0, 200}, {6, 50}}},
		{9, models.OrderStatusCompleted, models.PaymentTransfer, "", 3, [][2]int{{9, 1}, {0, 30}}},
		{0, models.OrderStatusCompleted, models.PaymentCash, "", 4, [][2]int{{2, 40}, {4, 2}}},
		{5, models.OrderStatusPending, models.PaymentCash, "", 4, [][2]int{{0, 25}, {1, 10}}},
		{7, models.OrderStatusCompleted, models.PaymentCard, "", 5, [][2]int{{7, 3}, {5, 1}}},
		{2, models.OrderStatusCompleted, models.PaymentCash, "", 6, [][2]int{{1, 40}, {0, 60}}},
		{4, models.OrderStatusCompleted, models.PaymentTransfer, "Monthly printing", 7, [][2]int{{0, 150}, {6, 80}, {5, 3}}},
		{1, models.OrderStatusCompleted, models.PaymentCash, "", 8, [][2]int{{3, 8}, {4, 4}}},
		{8, models.OrderStatusCompleted, models.PaymentCard, "", 9, [][2]int{{1, 25}, {2, 15}}},
	}

	// Oldest first so that invoice sequences follow creation time.
	for i := len(orders) - 1; i >= 0; i-- {
		o := orders[i]
		c := cust(o.customer)
		items := make([]models.OrderItem, 0, len(o.items))
		totals := make([]float64, 0, len(o.items))
		for _, pair := range o.items {
			service := svc(pair[0])
			line := utils.LineTotal(pair[1], service.Price)
			items = append(items, models.OrderItem{
				ServiceID:   service.ID,
				ServiceName: service.Name,
				Quantity:    pair[1],
				UnitPrice:   service.Price,
				Total:       line,
			})
			totals = append(totals, line)
		}
		// Orders within a day keep their relative order.
		createdAt := now.AddDate(0, 0, -o.daysAgo)
		if shifted := createdAt.Add(-time.Duration(i) * time.Minute); utils.SameDay(shifted, createdAt) {
			createdAt = shifted
		}
		s.seedOrder(models.Order{
			CustomerID:    c.ID,
			CustomerName:  c.Name,
			Items:         items,
			Total:         utils.SumRounded(totals...),
			Status:        o.status,
			PaymentMethod: o.method,
			Notes:         o.notes,
			CreatedAt:     createdAt,
		})
	}

	return s
}
