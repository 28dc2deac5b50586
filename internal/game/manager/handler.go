package manager

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	mgr *GameManager
}

func NewHandler(mgr *GameManager) *Handler {
	return &Handler{mgr: mgr}
}

// GET /tables
func (h *Handler) Tables(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tables": h.mgr.Tables(c.Request.Context())})
}

// POST /game body: {dealer}
func (h *Handler) Start(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.mgr.StartGame(c.Request.Context(), req.Dealer)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, resp)
	case errors.Is(err, ErrGameRunning):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrUnknownDealer):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrDealerLocked):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNoPlayers):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// GET /game
func (h *Handler) Status(c *gin.Context) {
	id, last := h.mgr.Status()
	c.JSON(http.StatusOK, gin.H{"active": id != "", "gameId": id, "last": last})
}
