package controllers

import (
	"net/http"
	"strconv"

	"pg-backend/services"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	ActivitySvc *services.ActivityService
}

func NewActivityController(svc *services.ActivityService) *ActivityController {
	return &ActivityController{ActivitySvc: svc}
}

// GET /api/activities/recent?limit=10
func (ac *ActivityController) Recent(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}
	activities, err := ac.ActivitySvc.Recent(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}
