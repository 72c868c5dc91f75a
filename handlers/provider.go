package handlers

import (
	"encoding/json"
	"net/http"

	"medibook/models"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// LoginProviderHandler authenticates a provider and returns a session
// token.
func (h *HandlerBundle) LoginProviderHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "missing or invalid details")
		return
	}

	token, err := h.Providers.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// ListProvidersHandler returns every provider's public fields.
func (h *HandlerBundle) ListProvidersHandler(c *gin.Context) {
	providers, err := h.Providers.List(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "providers": providers})
}

// GetProviderProfileHandler returns the authenticated provider's profile.
func (h *HandlerBundle) GetProviderProfileHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	profile, err := h.Providers.GetProfile(c.Request.Context(), providerID)
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profileData": profile})
}

// UpdateProviderProfileHandler updates the provider's fee, address and
// availability.
func (h *HandlerBundle) UpdateProviderProfileHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	var req struct {
		Fees      float64         `json:"fees" binding:"required"`
		Address   json.RawMessage `json:"address"`
		Available bool            `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "missing or invalid details")
		return
	}

	var address models.Address
	if len(req.Address) > 0 {
		if err := json.Unmarshal(req.Address, &address); err != nil {
			utils.JSONFail(c, http.StatusBadRequest, "invalid address")
			return
		}
	}

	if err := h.Providers.UpdateProfile(c.Request.Context(), providerID, req.Fees, address, req.Available); err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile Updated"})
}

// ToggleProviderAvailabilityHandler flips the provider's available flag
// and returns the new value.
func (h *HandlerBundle) ToggleProviderAvailabilityHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	available, err := h.Providers.ToggleAvailability(c.Request.Context(), providerID)
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Availability Changed", "available": available})
}
