package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/complaints-dashboard/internal/interface/http/dto"
	"github.com/ignatzorin/complaints-dashboard/internal/interface/http/response"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/profile"
)

type ProfileUseCases struct {
	List   *profile.ListProfilesUseCase
	Get    *profile.GetProfileUseCase
	Update *profile.UpdateProfileUseCase
	Status *profile.SetUserStatusUseCase
	Toggle *profile.ToggleUserStatusUseCase
	Stats  *profile.StatsUseCase
}

type ProfileHandler struct {
	uc ProfileUseCases
}

func NewProfileHandler(uc ProfileUseCases) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// List GET /api/admin/users
func (h *ProfileHandler) List(c *gin.Context) {
	var q dto.ProfileCriteria
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "некорректные параметры запроса")
		return
	}
	q.Page = parseIntQuery(c, "page", 1)
	q.PerPage = parseIntQuery(c, "per_page", 0)

	res, err := h.uc.List.Execute(c.Request.Context(), profile.ListInput{
		Criteria:      q.Criteria(),
		Page:          q.Page,
		PerPage:       q.PerPage,
		CriteriaToken: q.CriteriaToken,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToProfileResponses(res.Page.Items), response.Pagination{
		Page:          res.Page.Page,
		PerPage:       res.Page.PerPage,
		Total:         res.Page.TotalCount,
		TotalPages:    res.Page.TotalPages,
		Window:        res.Window,
		CriteriaToken: res.CriteriaToken,
	})
}

func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный идентификатор пользователя")
		return
	}

	p, err := h.uc.Get.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProfileResponse(p))
}

func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный идентификатор пользователя")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	p, err := h.uc.Update.Execute(c.Request.Context(), id, profile.UpdateProfileInput{
		Username: req.Username,
		FullName: req.FullName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProfileResponse(p))
}

func (h *ProfileHandler) SetStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный идентификатор пользователя")
		return
	}

	var req dto.UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "статус обязателен")
		return
	}

	p, err := h.uc.Status.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProfileResponse(p))
}

func (h *ProfileHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный идентификатор пользователя")
		return
	}

	p, err := h.uc.Toggle.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProfileResponse(p))
}

func (h *ProfileHandler) Stats(c *gin.Context) {
	stats, err := h.uc.Stats.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
