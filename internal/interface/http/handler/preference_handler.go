package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/complaints-dashboard/internal/interface/http/dto"
	"github.com/ignatzorin/complaints-dashboard/internal/interface/http/response"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/preference"
)

type PreferenceHandler struct {
	themes *preference.ThemeStore
}

func NewPreferenceHandler(themes *preference.ThemeStore) *PreferenceHandler {
	return &PreferenceHandler{themes: themes}
}

func (h *PreferenceHandler) GetTheme(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	dark, err := h.themes.Get(c.Request.Context(), profileID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ThemeResponse{DarkMode: dark})
}

func (h *PreferenceHandler) SetTheme(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	var req dto.ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "поле dark_mode обязательно")
		return
	}

	if err := h.themes.Set(c.Request.Context(), profileID, *req.DarkMode); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ThemeResponse{DarkMode: *req.DarkMode})
}
