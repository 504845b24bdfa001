package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"pg-backend/services"
	"pg-backend/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

// POST /api/rooms/:room_number/guests/:user_id/payments
func (pc *PaymentController) AddPayment(c *gin.Context) {
	var in services.AddPaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	record, err := pc.PaymentSvc.Add(c.Param("room_number"), c.Param("user_id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("%s payment recorded successfully", titleCase(record.PaymentType)),
		"payment": record,
	})
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
