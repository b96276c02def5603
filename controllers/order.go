// controllers/order.go
package controllers

import (
	"net/http"

	"printshop-backend/models"
	"printshop-backend/services"
	"printshop-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UpdateOrderStatusInput struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

type OrderController struct {
	ledger *services.OrderLedger
	log    *zap.Logger
}

func NewOrderController(ledger *services.OrderLedger, log *zap.Logger) *OrderController {
	return &OrderController{ledger: ledger, log: log}
}

// CreateOrder prices the items against the catalog and records the order
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input services.CreateOrderRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := oc.ledger.CreateOrder(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, oc.log, err, "Order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrders lists orders most recent first, filtered by ?search= and ?status=
func (oc *OrderController) GetOrders(c *gin.Context) {
	orders, err := oc.ledger.List(c.Request.Context(), services.OrderFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	})
	if err != nil {
		respondServiceError(c, oc.log, err, "Order")
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (oc *OrderController) GetOrder(c *gin.Context) {
	order, err := oc.ledger.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, oc.log, err, "Order")
		return
	}

	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := oc.ledger.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		respondServiceError(c, oc.log, err, "Order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder removes the order and reverses the customer's totals
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	if err := oc.ledger.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, oc.log, err, "Order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
