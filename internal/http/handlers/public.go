package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// publicNoticeLimit caps the public notice board at the newest entries.
const publicNoticeLimit = 5

// Settings returns all settings as a key/value object. Public.
func (h *Handler) Settings(c *gin.Context) {
	settings, err := h.SettingRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Notices returns the newest broadcast notices. Public.
func (h *Handler) Notices(c *gin.Context) {
	notices, err := h.NoticeRepo.ListRecent(c.Request.Context(), publicNoticeLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, notices)
}
