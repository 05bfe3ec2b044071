package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stake-plus/spycat-agency/src/api/agency"
)

type SpyCats struct {
	svc       *agency.Service
	sanitizer textSanitizer
}

func NewSpyCats(svc *agency.Service) SpyCats {
	return SpyCats{svc: svc, sanitizer: newTextSanitizer()}
}

// POST /spy-cats
func (h SpyCats) Create(c *gin.Context) {
	var req struct {
		Name              string `json:"name" binding:"required"`
		YearsOfExperience *int   `json:"years_of_experience" binding:"required,gte=0"`
		Breed             string `json:"breed" binding:"required"`
		Salary            *int   `json:"salary" binding:"required,gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_input", err.Error())
		return
	}

	cat, err := h.svc.CreateSpyCat(c.Request.Context(), agency.NewSpyCat{
		Name:              h.sanitizer.Clean(req.Name),
		YearsOfExperience: *req.YearsOfExperience,
		Breed:             h.sanitizer.Clean(req.Breed),
		Salary:            *req.Salary,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// GET /spy-cats
func (h SpyCats) List(c *gin.Context) {
	cats, err := h.svc.ListSpyCats(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// GET /spy-cats/:id
func (h SpyCats) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cat, err := h.svc.GetSpyCat(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// PUT /spy-cats/:id updates the salary only.
func (h SpyCats) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Salary *int `json:"salary" binding:"required,gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_input", err.Error())
		return
	}

	cat, err := h.svc.UpdateSalary(c.Request.Context(), id, *req.Salary)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// DELETE /spy-cats/:id
func (h SpyCats) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteSpyCat(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Spy cat deleted successfully"})
}
