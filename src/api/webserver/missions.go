package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stake-plus/spycat-agency/src/api/agency"
)

type Missions struct {
	svc       *agency.Service
	sanitizer textSanitizer
}

func NewMissions(svc *agency.Service) Missions {
	return Missions{svc: svc, sanitizer: newTextSanitizer()}
}

// POST /missions
func (h Missions) Create(c *gin.Context) {
	var req struct {
		Targets []struct {
			Name    string `json:"name" binding:"required"`
			Country string `json:"country" binding:"required"`
		} `json:"targets" binding:"dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_input", err.Error())
		return
	}

	targets := make([]agency.NewTarget, 0, len(req.Targets))
	for _, t := range req.Targets {
		targets = append(targets, agency.NewTarget{
			Name:    h.sanitizer.Clean(t.Name),
			Country: h.sanitizer.Clean(t.Country),
		})
	}

	m, err := h.svc.CreateMission(c.Request.Context(), targets)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// GET /missions
func (h Missions) List(c *gin.Context) {
	missions, err := h.svc.ListMissions(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, missions)
}

// GET /missions/:id
func (h Missions) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	m, err := h.svc.GetMission(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// PUT /missions/:id/assign with {"cat_id": n} or {"cat_id": null}.
func (h Missions) Assign(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		CatID *uint64 `json:"cat_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_input", err.Error())
		return
	}
	// cat ids start at 1; 0 clears the assignment like null does
	if req.CatID != nil && *req.CatID == 0 {
		req.CatID = nil
	}

	m, err := h.svc.AssignCat(c.Request.Context(), id, req.CatID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DELETE /missions/:id
func (h Missions) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteMission(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mission deleted successfully"})
}
