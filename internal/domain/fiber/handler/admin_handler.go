package handler

import (
	"github.com/fadilmartias/ats-interviewer/internal/middleware"
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/fadilmartias/ats-interviewer/internal/usecase"
	"github.com/fadilmartias/ats-interviewer/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	admin *usecase.AdminUsecase
}

func NewAdminHandler(admin *usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) RegisterRoutes(app *fiber.App) {
	admin := app.Group("/api/admin", middleware.RequireRole(model.RoleAdmin))
	admin.Get("/stats", h.Stats)
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.admin.Stats(c.Context())
	if err != nil {
		return util.DomainErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get stats",
		Data:    stats,
	})
}
