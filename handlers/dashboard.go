package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProviderDashboardHandler returns the provider's earnings and activity
// aggregates.
func (h *HandlerBundle) ProviderDashboardHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	data, err := h.Dashboard.ProviderDashboard(c.Request.Context(), providerID)
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "dashData": data})
}
