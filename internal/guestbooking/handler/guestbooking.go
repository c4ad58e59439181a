package handler

import (
	"encoding/json"
	"net/http"

	"skybook/internal/guestbooking/service"
	httputil "skybook/pkg/http"
	"skybook/pkg/logger"
	"skybook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type GuestBookingHandler struct {
	service service.GuestBookingService
	log     *logger.Logger
}

func NewGuestBookingHandler(service service.GuestBookingService, log *logger.Logger) *GuestBookingHandler {
	return &GuestBookingHandler{
		service: service,
		log:     log,
	}
}

func (h *GuestBookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var guest model.GuestBooking
	if err := json.NewDecoder(r.Body).Decode(&guest); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	result, err := h.service.Create(r.Context(), &guest)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, result); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *GuestBookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/guest-bookings", h.Create)
}
