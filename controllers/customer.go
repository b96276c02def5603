package controllers

import (
	"net/http"

	"printshop-backend/services"
	"printshop-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CustomerController struct {
	customers *services.CustomerService
	log       *zap.Logger
}

func NewCustomerController(customers *services.CustomerService, log *zap.Logger) *CustomerController {
	return &CustomerController{customers: customers, log: log}
}

func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var input services.CreateCustomerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := cc.customers.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, cc.log, err, "Customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists customers, optionally filtered by ?search=
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	list, err := cc.customers.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondServiceError(c, cc.log, err, "Customer")
		return
	}

	c.JSON(http.StatusOK, list)
}

func (cc *CustomerController) GetCustomer(c *gin.Context) {
	customer, err := cc.customers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, cc.log, err, "Customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	var input services.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := cc.customers.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, cc.log, err, "Customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	if err := cc.customers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, cc.log, err, "Customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
