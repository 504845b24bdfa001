package controllers

import (
	"fmt"
	"net/http"

	"pg-backend/services"
	"pg-backend/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	GuestSvc *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{GuestSvc: svc}
}

// GET /api/rooms/:room_number/guests
func (gc *GuestController) ListGuests(c *gin.Context) {
	guests, err := gc.GuestSvc.ListGuests(c.Param("room_number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guests)
}

// POST /api/rooms/:room_number/guests
func (gc *GuestController) AddGuest(c *gin.Context) {
	var in services.AddGuestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	guest, err := gc.GuestSvc.Add(c.Param("room_number"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Guest added to room successfully",
		"guest":   guest,
	})
}

// PUT /api/rooms/:room_number/guests/:user_id
func (gc *GuestController) UpdateGuest(c *gin.Context) {
	var in services.UpdateGuestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	guest, err := gc.GuestSvc.UpdateDetails(c.Param("room_number"), c.Param("user_id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Guest details updated successfully",
		"guest":   guest,
	})
}

// DELETE /api/rooms/:room_number/guests/:user_id
func (gc *GuestController) RemoveGuest(c *gin.Context) {
	roomNumber := c.Param("room_number")
	userID := c.Param("user_id")
	if err := gc.GuestSvc.Remove(roomNumber, userID); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Guest with id %s removed from room %s successfully", userID, roomNumber),
	})
}
