package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursecatalog-backend/internal/http/response"
	"github.com/yungbote/coursecatalog-backend/internal/modules/catalog"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

type WishlistHandler struct {
	log      *logger.Logger
	usecases catalog.Usecases
}

func NewWishlistHandler(log *logger.Logger, usecases catalog.Usecases) *WishlistHandler {
	return &WishlistHandler{
		log:      log.With("handler", "WishlistHandler"),
		usecases: usecases,
	}
}

// Add: POST /api/courses/:slug/wishlist. Adding twice reports added=false.
func (h *WishlistHandler) Add(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	entry, added, err := h.usecases.AddToWishlist(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"entry": entry, "added": added})
}

// Remove: DELETE /api/courses/:slug/wishlist
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	removed, err := h.usecases.RemoveFromWishlist(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"removed": removed})
}

// List: GET /api/me/wishlist
func (h *WishlistHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	rows, err := h.usecases.ListWishlist(c.Request.Context(), userID)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"wishlist": rows})
}
