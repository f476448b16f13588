package handlers

import (
	"log"
	"net/http"

	"github.com/forgeboard-dev/forgeboard/internal/services"
	"github.com/gin-gonic/gin"
)

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendContactEmail forwards a contact-form message to the mail relay.
// Delivery happens in the background; the response never waits on it.
func (h *Handler) SendContactEmail(ctx *gin.Context) {
	var req ContactRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	go func() {
		if err := h.Mailer.SendContact(services.ContactMessage{
			Name:    req.Name,
			Email:   req.Email,
			Subject: req.Subject,
			Message: req.Message,
		}); err != nil {
			log.Printf("Failed to send contact email: %v", err)
		}
	}()

	ctx.JSON(http.StatusAccepted, gin.H{"message": "Message received"})
}

// SubscribeToNewsletter registers an email with the newsletter list, also
// fire-and-forget.
func (h *Handler) SubscribeToNewsletter(ctx *gin.Context) {
	var req SubscribeRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	go func() {
		if err := h.Mailer.Subscribe(req.Email); err != nil {
			log.Printf("Failed to subscribe %s: %v", req.Email, err)
		}
	}()

	ctx.JSON(http.StatusAccepted, gin.H{"message": "Subscription received"})
}
