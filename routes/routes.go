package routes

import (
	"net/http"
	"slices"
	"time"

	"printshop-backend/config"
	"printshop-backend/controllers"
	"printshop-backend/services"
	"printshop-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Deps struct {
	Catalog   *services.CatalogService
	Customers *services.CustomerService
	Ledger    *services.OrderLedger
	Reports   *services.ReportingEngine
	Tokens    *utils.TokenManager

	Logger          *zap.Logger
	Registry        *prometheus.Registry
	RequestObserver config.RequestObserver
	CORSOrigins     []string
	SlowRequest     time.Duration
}

func SetupRouter(deps Deps) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())

	origins := deps.CORSOrigins
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			return slices.Contains(origins, origin)
		},
	}))

	r.Use(config.PerformanceLogger(log, deps.SlowRequest, deps.RequestObserver))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	authController := controllers.NewAuthController(deps.Tokens)
	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)

		auth.Use(deps.Tokens.AuthMiddleware())
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(deps.Tokens.AuthMiddleware())
	{
		// Service routes
		serviceController := controllers.NewServiceController(deps.Catalog, log)
		svc := api.Group("/services")
		{
			svc.POST("", serviceController.CreateService)
			svc.GET("", serviceController.GetServices)
			svc.GET("/:id", serviceController.GetService)
			svc.PUT("/:id", serviceController.UpdateService)
			svc.DELETE("/:id", serviceController.DeleteService)
		}

		// Customer routes
		customerController := controllers.NewCustomerController(deps.Customers, log)
		customers := api.Group("/customers")
		{
			customers.POST("", customerController.CreateCustomer)
			customers.GET("", customerController.GetCustomers)
			customers.GET("/:id", customerController.GetCustomer)
			customers.PUT("/:id", customerController.UpdateCustomer)
			customers.DELETE("/:id", customerController.DeleteCustomer)
		}

		// Order routes
		orderController := controllers.NewOrderController(deps.Ledger, log)
		orders := api.Group("/orders")
		{
			orders.POST("", orderController.CreateOrder)
			orders.GET("", orderController.GetOrders)
			orders.GET("/:id", orderController.GetOrder)
			orders.PUT("/:id/status", orderController.UpdateOrderStatus)
			orders.DELETE("/:id", orderController.DeleteOrder)
		}

		// Report routes
		reportController := controllers.NewReportController(deps.Reports, log)
		api.GET("/dashboard", reportController.GetDashboard)
		reports := api.Group("/reports")
		{
			reports.GET("/daily", reportController.GetDailyRevenue)
			reports.GET("/daily.csv", reportController.ExportDailyRevenue)
			reports.GET("/services", reportController.GetServiceDistribution)
			reports.GET("/summary", reportController.GetRevenueSummary)
		}
	}

	return r
}
