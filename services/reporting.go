package services

import (
	"cmp"
	"context"
	"slices"
	"time"

	"printshop-backend/models"
	"printshop-backend/store"
	"printshop-backend/utils"
)

const (
	MaxReportDays = 366
	dayLabel      = "Jan 02"
	dayKey        = "2006-01-02"
)

// ReportingEngine derives every figure from a fresh scan of the ledger. It
// keeps no state of its own, so results always reflect the latest writes.
type ReportingEngine struct {
	repo  store.Repository
	clock func() time.Time
	loc   *time.Location
}

func NewReportingEngine(repo store.Repository, clock func() time.Time, loc *time.Location) *ReportingEngine {
	if clock == nil {
		clock = timeNow
	}
	if loc == nil {
		loc = time.Local
	}
	return &ReportingEngine{repo: repo, clock: clock, loc: loc}
}

// Today is the start of the current calendar day in the shop's time zone.
func (e *ReportingEngine) Today() time.Time {
	return utils.BeginningOfDay(e.clock().In(e.loc))
}

func (e *ReportingEngine) DashboardMetrics(ctx context.Context) (models.DashboardMetrics, error) {
	orders, err := e.repo.ListOrders(ctx)
	if err != nil {
		return models.DashboardMetrics{}, err
	}
	customers, err := e.repo.CountCustomers(ctx)
	if err != nil {
		return models.DashboardMetrics{}, err
	}

	today := e.Today()
	var totals []float64
	for _, o := range orders {
		if o.Status == models.OrderStatusCancelled || !utils.SameDay(o.CreatedAt, today) {
			continue
		}
		totals = append(totals, o.Total)
	}
	revenue := utils.SumRounded(totals...)

	return models.DashboardMetrics{
		RevenueToday:    revenue,
		OrdersToday:     len(totals),
		ActiveCustomers: customers,
		AvgOrderValue:   utils.Average(revenue, len(totals)),
	}, nil
}

// DailyRevenue returns one entry per calendar day for the last days days,
// oldest first and ending today. Days without orders report zero.
func (e *ReportingEngine) DailyRevenue(ctx context.Context, days int) ([]models.DailyReport, error) {
	if days < 1 || days > MaxReportDays {
		return nil, validationErr("days must be between 1 and %d", MaxReportDays)
	}
	orders, err := e.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string][]float64)
	for _, o := range orders {
		if o.Status == models.OrderStatusCancelled {
			continue
		}
		key := o.CreatedAt.In(e.loc).Format(dayKey)
		buckets[key] = append(buckets[key], o.Total)
	}

	today := e.Today()
	series := make([]models.DailyReport, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		totals := buckets[day.Format(dayKey)]
		series = append(series, models.DailyReport{
			Date:    day.Format(dayLabel),
			Revenue: utils.SumRounded(totals...),
			Orders:  len(totals),
		})
	}
	return series, nil
}

// ServiceDistribution groups the items of all non-cancelled orders by the
// service name recorded on the item, highest revenue first. Ties keep the
// order in which names were first seen.
func (e *ReportingEngine) ServiceDistribution(ctx context.Context) ([]models.ServiceReport, error) {
	orders, err := e.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.ServiceReport
	index := make(map[string]int)
	for _, o := range orders {
		if o.Status == models.OrderStatusCancelled {
			continue
		}
		for _, item := range o.Items {
			i, ok := index[item.ServiceName]
			if !ok {
				i = len(out)
				index[item.ServiceName] = i
				out = append(out, models.ServiceReport{ServiceName: item.ServiceName})
			}
			out[i].Quantity += item.Quantity
			out[i].Revenue = utils.SumRounded(out[i].Revenue, item.Total)
		}
	}

	slices.SortStableFunc(out, func(a, b models.ServiceReport) int {
		return cmp.Compare(b.Revenue, a.Revenue)
	})
	if out == nil {
		out = []models.ServiceReport{}
	}
	return out, nil
}

// RevenueSummary totals the daily series over the same window.
func (e *ReportingEngine) RevenueSummary(ctx context.Context, days int) (models.RevenueSummary, error) {
	series, err := e.DailyRevenue(ctx, days)
	if err != nil {
		return models.RevenueSummary{}, err
	}
	summary := models.RevenueSummary{Days: days}
	revenues := make([]float64, 0, len(series))
	for _, point := range series {
		revenues = append(revenues, point.Revenue)
		summary.Orders += point.Orders
	}
	summary.Revenue = utils.SumRounded(revenues...)
	summary.AvgOrderValue = utils.Average(summary.Revenue, summary.Orders)
	return summary, nil
}
