package handler

import (
	"strings"

	"github.com/fadilmartias/ats-interviewer/internal/middleware"
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/fadilmartias/ats-interviewer/internal/usecase"
	"github.com/fadilmartias/ats-interviewer/internal/util"
	"github.com/gofiber/fiber/v2"
)

type RecruiterHandler struct {
	jobs *usecase.JobUsecase
	apps *usecase.ApplicationUsecase
}

func NewRecruiterHandler(jobs *usecase.JobUsecase, apps *usecase.ApplicationUsecase) *RecruiterHandler {
	return &RecruiterHandler{jobs: jobs, apps: apps}
}

func (h *RecruiterHandler) RegisterRoutes(app *fiber.App) {
	recruiter := app.Group("/api/recruiter", middleware.RequireRole(model.RoleRecruiter))
	recruiter.Post("/jobs", h.CreateJob)
	recruiter.Get("/jobs", h.MyJobs)
	recruiter.Get("/jobs/:id/applications", h.JobApplications)
	recruiter.Post("/applications/:id/decision", h.Decide)
}

func (h *RecruiterHandler) CreateJob(c *fiber.Ctx) error {
	var req struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Requirements string `json:"requirements"`
	}
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "title and description are required",
		}, err)
	}

	actor := middleware.ActorFrom(c)
	job, err := h.jobs.Create(c.Context(), actor.ID, req.Title, req.Description, req.Requirements)
	if err != nil {
		return util.DomainErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Job created successfully",
		Data:    job,
	})
}

func (h *RecruiterHandler) MyJobs(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	jobs, err := h.jobs.ListByRecruiter(c.Context(), actor.ID)
	if err != nil {
		return util.DomainErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get jobs",
		Data:    jobs,
	})
}

func (h *RecruiterHandler) JobApplications(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	rows, err := h.jobs.ApplicationsForJob(c.Context(), c.Params("id"), actor.ID)
	if err != nil {
		return util.DomainErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get applications",
		Data:    rows,
	})
}

func (h *RecruiterHandler) Decide(c *fiber.Ctx) error {
	var req struct {
		Decision model.ApplicationStatus `json:"decision"`
	}
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "decision is required",
		}, err)
	}

	actor := middleware.ActorFrom(c)
	app, err := h.apps.Decide(c.Context(), c.Params("id"), actor.ID, req.Decision)
	if err != nil {
		return util.DomainErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Decision recorded",
		Data:    app,
	})
}
