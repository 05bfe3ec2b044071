package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stake-plus/spycat-agency/src/api/agency"
)

type Targets struct {
	svc       *agency.Service
	sanitizer textSanitizer
}

func NewTargets(svc *agency.Service) Targets {
	return Targets{svc: svc, sanitizer: newTextSanitizer()}
}

// GET /targets/:id
func (h Targets) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetTarget(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// PUT /targets/:id with optional notes and is_completed.
func (h Targets) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Notes       *string `json:"notes"`
		IsCompleted *bool   `json:"is_completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_input", err.Error())
		return
	}
	if req.Notes != nil {
		clean := h.sanitizer.Clean(*req.Notes)
		req.Notes = &clean
	}

	t, err := h.svc.UpdateTarget(c.Request.Context(), id, agency.TargetPatch{
		Notes:       req.Notes,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
