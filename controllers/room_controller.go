package controllers

import (
	"net/http"
	"strconv"

	"pg-backend/repository"
	"pg-backend/services"
	"pg-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

func roomFilterFromQuery(c *gin.Context) repository.RoomFilter {
	filter := repository.RoomFilter{
		RoomType: c.Query("room_type"),
		Status:   c.Query("status"),
	}
	if raw := c.Query("min_occupancy"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			filter.MinOccupancy = &n
		}
	}
	if raw := c.Query("max_occupancy"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			filter.MaxOccupancy = &n
		}
	}
	return filter
}

// GET /api/rooms
func (rc *RoomController) ListRooms(c *gin.Context) {
	rooms, err := rc.RoomSvc.List(roomFilterFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GET /api/rooms/:room_number
func (rc *RoomController) GetRoom(c *gin.Context) {
	room, err := rc.RoomSvc.Get(c.Param("room_number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// POST /api/rooms
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var in services.CreateRoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	room, err := rc.RoomSvc.Create(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// PUT /api/rooms/:room_number
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	var in services.UpdateRoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	room, err := rc.RoomSvc.Update(c.Param("room_number"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DELETE /api/rooms/:room_number
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	if err := rc.RoomSvc.Delete(c.Param("room_number")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room deleted successfully"})
}

// GET /api/all/rooms/statistics
func (rc *RoomController) Statistics(c *gin.Context) {
	stats, err := rc.RoomSvc.Statistics()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/all/rooms/available
func (rc *RoomController) AvailableRooms(c *gin.Context) {
	rooms, err := rc.RoomSvc.List(repository.RoomFilter{Status: "available"})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GET /api/all/rooms/occupied
func (rc *RoomController) OccupiedRooms(c *gin.Context) {
	rooms, err := rc.RoomSvc.List(repository.RoomFilter{Status: "occupied"})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GET /api/all/rooms/search
func (rc *RoomController) SearchRooms(c *gin.Context) {
	rc.ListRooms(c)
}
