package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainStatus "classroom-occupancy-tracker/internal/domain/status"
	"classroom-occupancy-tracker/internal/usecase/status"
	"classroom-occupancy-tracker/pkg/utils"
)

type StatusHandler struct {
	service *status.Service
}

func NewStatusHandler(service *status.Service) *StatusHandler {
	return &StatusHandler{service: service}
}

// RegisterPublicRoutes binds the read-only snapshot endpoints used by
// anonymous viewers. Same handlers as the authenticated reads; only the
// route group in front of them differs.
func (h *StatusHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/room-status", h.GetRoomStatus)
	router.GET("/lab-status", h.GetLabStatus)
}

// RegisterProtectedRoutes binds reads and writes behind the auth middleware.
func (h *StatusHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/room-status", h.GetRoomStatus)
	router.POST("/room-status", h.UpdateRoomStatus)
	router.GET("/lab-status", h.GetLabStatus)
	router.POST("/lab-status", h.UpdateLabStatus)
}

func (h *StatusHandler) GetRoomStatus(c *gin.Context) {
	h.snapshot(c, domainStatus.KindRoom)
}

func (h *StatusHandler) GetLabStatus(c *gin.Context) {
	h.snapshot(c, domainStatus.KindLab)
}

// snapshot responds with the bare name-to-occupancy map, not the usual
// message envelope; the client consumes it directly.
func (h *StatusHandler) snapshot(c *gin.Context, kind domainStatus.Kind) {
	snapshot, err := h.service.Snapshot(c.Request.Context(), kind)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *StatusHandler) UpdateRoomStatus(c *gin.Context) {
	var req status.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Room and status are required")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Room and status are required")
		return
	}

	record, err := h.service.Set(c.Request.Context(), domainStatus.KindRoom, req.Room, *req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Room status updated successfully", record)
}

func (h *StatusHandler) UpdateLabStatus(c *gin.Context) {
	var req status.UpdateLabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Lab and status are required")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Lab and status are required")
		return
	}

	record, err := h.service.Set(c.Request.Context(), domainStatus.KindLab, req.Lab, *req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Lab status updated successfully", record)
}
