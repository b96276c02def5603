// controllers/service.go
package controllers

import (
	"net/http"
	"strconv"

	"printshop-backend/services"
	"printshop-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ServiceController struct {
	catalog *services.CatalogService
	log     *zap.Logger
}

func NewServiceController(catalog *services.CatalogService, log *zap.Logger) *ServiceController {
	return &ServiceController{catalog: catalog, log: log}
}

// CreateService adds a service to the catalog
func (sc *ServiceController) CreateService(c *gin.Context) {
	var input services.CreateServiceRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, err := sc.catalog.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, sc.log, err, "Service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices lists the catalog, optionally filtered by ?search= and
// ?active=true
func (sc *ServiceController) GetServices(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.Query("active"))

	list, err := sc.catalog.List(c.Request.Context(), services.ServiceFilter{
		Search:     c.Query("search"),
		ActiveOnly: activeOnly,
	})
	if err != nil {
		respondServiceError(c, sc.log, err, "Service")
		return
	}

	c.JSON(http.StatusOK, list)
}

func (sc *ServiceController) GetService(c *gin.Context) {
	service, err := sc.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, sc.log, err, "Service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService applies a partial update
func (sc *ServiceController) UpdateService(c *gin.Context) {
	var input services.UpdateServiceRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, err := sc.catalog.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, sc.log, err, "Service")
		return
	}

	c.JSON(http.StatusOK, service)
}

func (sc *ServiceController) DeleteService(c *gin.Context) {
	if err := sc.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, sc.log, err, "Service")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
