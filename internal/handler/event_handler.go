package handler

import (
	"errors"
	"fmt"
	"net/http"

	"events-api/internal/model"
	"events-api/internal/service"
	apperrors "events-api/pkg/app_errors"
	"events-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/events", h.List)
	r.GET("/events/:id", h.GetByID)
	r.POST("/events", h.Create)
	r.PUT("/events/:id", h.Update)
	r.DELETE("/events/:id", h.Delete)
	r.GET("/events/count/:id", h.CountByID)
}

// EventRequest is the body of create and update. All seven fields are
// required; pointers let an explicit zero count as present. Integers must
// fit the 32-bit INTEGER columns.
type EventRequest struct {
	EventName     *string `json:"event_name" binding:"required,max=20"`
	StartingTime  *string `json:"starting_time" binding:"required"`
	EndingTime    *string `json:"ending_time" binding:"required"`
	Image         *string `json:"image" binding:"required,max=100"`
	DiscountRate  *int    `json:"discount_rate" binding:"required,min=-2147483648,max=2147483647"`
	DiscountRules *int    `json:"discount_rules" binding:"required,min=-2147483648,max=2147483647"`
	Price         *int    `json:"price" binding:"required,min=-2147483648,max=2147483647"`
}

func (r *EventRequest) toModel() (*model.Event, error) {
	start, err := model.ParseTime(*r.StartingTime)
	if err != nil {
		return nil, fmt.Errorf("%w: starting_time must use layout %q", apperrors.ErrInvalidInput, model.TimeLayout)
	}
	end, err := model.ParseTime(*r.EndingTime)
	if err != nil {
		return nil, fmt.Errorf("%w: ending_time must use layout %q", apperrors.ErrInvalidInput, model.TimeLayout)
	}
	return &model.Event{
		EventName:     *r.EventName,
		StartingTime:  start,
		EndingTime:    end,
		Image:         *r.Image,
		DiscountRate:  *r.DiscountRate,
		DiscountRules: *r.DiscountRules,
		Price:         *r.Price,
	}, nil
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	if events == nil {
		events = []*model.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"event": events})
}

func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	event, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "GetByID")
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

func (h *EventHandler) Create(c *gin.Context) {
	var req EventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	event, err := req.toModel()
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	if _, err := h.service.Create(c.Request.Context(), event); err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "add success"})
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req EventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	event, err := req.toModel()
	if err != nil {
		h.handleError(c, err, "Update")
		return
	}
	updated, err := h.service.Update(c.Request.Context(), id, event)
	if err != nil {
		h.handleError(c, err, "Update")
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": updated})
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err, "Delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "delete success"})
}

func (h *EventHandler) CountByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	count, err := h.service.CountByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "CountByID")
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": count})
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(
		zap.String("operation", operation),
		zap.String("request_id", c.GetString(RequestIDKey)),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestMessage, "details": []string{err.Error()}})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
