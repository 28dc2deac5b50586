package roster

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// GET /roster
func (h *Handler) List(c *gin.Context) {
	recs := h.svc.Load(c.Request.Context())
	if recs == nil {
		recs = []Record{}
	}
	c.JSON(http.StatusOK, ListResponse{Players: recs})
}

// POST /roster body: {names}
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	recs, err := h.svc.Create(c.Request.Context(), req.Names)
	switch {
	case errors.Is(err, ErrRosterFull), errors.Is(err, ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrInvalidName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ListResponse{Players: recs})
}
