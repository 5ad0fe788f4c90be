package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/complaints-dashboard/internal/interface/http/dto"
	"github.com/ignatzorin/complaints-dashboard/internal/interface/http/response"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/complaint"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/dashboard"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/profile"
)

type DashboardHandler struct {
	summary *dashboard.SummaryUseCase
}

func NewDashboardHandler(summary *dashboard.SummaryUseCase) *DashboardHandler {
	return &DashboardHandler{summary: summary}
}

type summaryResponse struct {
	Complaints *complaint.Stats        `json:"complaints"`
	Users      *profile.Stats          `json:"users"`
	Recent     []dto.ComplaintResponse `json:"recent"`
	Pagination response.Pagination     `json:"pagination"`
}

// Summary GET /api/admin/dashboard?page=
func (h *DashboardHandler) Summary(c *gin.Context) {
	s, err := h.summary.Execute(c.Request.Context(), parseIntQuery(c, "page", 1))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, summaryResponse{
		Complaints: s.Complaints,
		Users:      s.Users,
		Recent:     dto.ToComplaintResponses(s.Recent.Items),
		Pagination: response.Pagination{
			Page:       s.Recent.Page,
			PerPage:    s.Recent.PerPage,
			Total:      s.Recent.TotalCount,
			TotalPages: s.Recent.TotalPages,
			HasMore:    s.Recent.HasNext(),
		},
	})
}
