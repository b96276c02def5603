package models

type DashboardMetrics struct {
	RevenueToday float64 `json:"revenue_today"`
	OrdersToday  int     `json:"orders_today"`
	// ActiveCustomers is the size of the customer list, not customers with
	// recent activity.
	ActiveCustomers int     `json:"active_customers"`
	AvgOrderValue   float64 `json:"avg_order_value"`
}

type DailyReport struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type ServiceReport struct {
	ServiceName string  `json:"service_name"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

type RevenueSummary struct {
	Days          int     `json:"days"`
	Revenue       float64 `json:"revenue"`
	Orders        int     `json:"orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
}
