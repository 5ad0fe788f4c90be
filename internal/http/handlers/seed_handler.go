package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/complaints-dashboard/internal/interface/http/response"
	"github.com/ignatzorin/complaints-dashboard/internal/service"
)

const (
	defaultSeedProfiles   = 20
	defaultSeedComplaints = 60
	maxSeedProfiles       = 500
	maxSeedComplaints     = 2000
)

// SeedHandler генерирует демо-данные. Маршрут есть только в development.
type SeedHandler struct {
	seed *service.SeedService
}

func NewSeedHandler(seed *service.SeedService) *SeedHandler {
	return &SeedHandler{seed: seed}
}

type SeedRequest struct {
	NumProfiles   int `json:"num_profiles" form:"num_profiles"`
	NumComplaints int `json:"num_complaints" form:"num_complaints"`
}

// Seed обрабатывает POST /api/seed.
func (h *SeedHandler) Seed(c *gin.Context) {
	var req SeedRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "некорректное тело запроса")
			return
		}
	} else if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "некорректные параметры запроса")
		return
	}

	req.NumProfiles = clamp(req.NumProfiles, defaultSeedProfiles, maxSeedProfiles)
	req.NumComplaints = clamp(req.NumComplaints, defaultSeedComplaints, maxSeedComplaints)

	result, err := h.seed.SeedDemo(c.Request.Context(), req.NumProfiles, req.NumComplaints)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

func clamp(v, def, max int) int {
	if v < 1 {
		return def
	}
	if v > max {
		return max
	}
	return v
}
