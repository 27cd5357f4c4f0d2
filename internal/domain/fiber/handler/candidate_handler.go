package handler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/ats-interviewer/internal/dto"
	"github.com/fadilmartias/ats-interviewer/internal/middleware"
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/fadilmartias/ats-interviewer/internal/response"
	"github.com/fadilmartias/ats-interviewer/internal/usecase"
	"github.com/fadilmartias/ats-interviewer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const resumeUploadDir = "./uploads/resumes/"

type CandidateHandler struct {
	apps        *usecase.ApplicationUsecase
	interviews  *usecase.InterviewUsecase
	jobs        *usecase.JobUsecase
	uploadDir   string
	extractText func(path string) (string, error)
}

func NewCandidateHandler(apps *usecase.ApplicationUsecase, interviews *usecase.InterviewUsecase, jobs *usecase.JobUsecase) *CandidateHandler {
	return &CandidateHandler{
		apps:        apps,
		interviews:  interviews,
		jobs:        jobs,
		uploadDir:   resumeUploadDir,
		extractText: util.ExtractPDFText,
	}
}

func (h *CandidateHandler) RegisterRoutes(app *fiber.App) {
	candidate := app.Group("/api/candidate", middleware.RequireRole(model.RoleCandidate))
	candidate.Get("/dashboard", h.Dashboard)
	candidate.Get("/jobs", h.Jobs)
	candidate.Post("/apply", h.Apply)
	candidate.Post("/applications/:id/resume", h.UploadResume)
	candidate.Get("/applications", h.MyApplications)
	candidate.Get("/applications/:id", h.ApplicationState)
	candidate.Get("/interviews/:id", h.InterviewState)
	candidate.Post("/interviews/:id/answers", h.SubmitAnswer)
	candidate.Post("/interviews/:id/evaluation/retry", h.RetryEvaluation)
}

func (h *CandidateHandler) Dashboard(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	counts, err := h.apps.Dashboard(c.Context(), actor.ID)
	if err != nil {
		return util.DomainErrorResponse(c, err)
	}
	data := dto.CandidateDashboardDTO{
		TotalApplications: counts[""],
		Pending:           counts[model.ApplicationPending],
		Interviewing:      counts[model.ApplicationInterviewing],
		Completed:         counts[model.ApplicationCompleted],
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get dashboard",
		Data:    data,
	})
}

func (h *CandidateHandler) Jobs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	jobs, total, err := h.jobs.ListActive(c.Context(), page, pageSize)
	if err != nil {
		return util.DomainErrorResponse(c, err)
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	from := (page-1)*pageSize + 1
	if len(jobs) == 0 {
		from = 0
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get jobs",
		Data:    jobs,
		Pagination: &response.Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
			TotalItems: total,
			HasMore:    int64(page) < totalPages,
			From:       from,
			To:         (page-1)*pageSize + len(jobs),
		},
	})
}

func (h *CandidateHandler) Apply(c *fiber.Ctx) error {
	var req struct {
		JobID uuid.UUID `json:"job_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.JobID == uuid.Nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "job_id is required",
		}, err)
	}

	actor := middleware.ActorFrom(c)
	app, err := h.apps.RecordApplication(c.Context(), actor.ID, req.JobID)
	if err != nil {
		return util.DomainErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Application submitted successfully",
		Data:    dto.NewApplicationDTO(app),
	})
}

func (h *CandidateHandler) UploadResume(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	applicationID := c.Params("id")

	resumePath, resumeText, uploadErr := h.processResume(c, actor.ID, applicationID)
	if uploadErr != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    uploadErr.Code,
			Message: uploadErr.Message,
		})
	}

	app, iv, err := h.apps.AttachResume(c.Context(), applicationID, actor.ID, resumePath, resumeText)
	if err != nil {
		return util.DomainErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume uploaded successfully",
		Data: fiber.Map{
			"application": dto.NewApplicationDTO(app),
			"interview":   dto.NewInterviewStateDTO(iv),
		},
	})
}

// processResume validates and stores the uploaded file and extracts its text.
// A non-nil error means nothing usable was attached; the caller must render
// it and return before any state transition happens.
func (h *CandidateHandler) processResume(c *fiber.Ctx, candidateID uuid.UUID, applicationID string) (string, string, *fiber.Error) {
	file, err := c.FormFile("resume")
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "resume file is required")
	}
	if file.Size > 5*1024*1024 {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "resume file size is too large (max 5MB)")
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "unsupported resume file type")
	}

	savePath := filepath.Join(h.uploadDir, fmt.Sprintf("resume_%s_%s.pdf", candidateID, applicationID))
	if err := c.SaveFile(file, savePath); err != nil {
		return "", "", fiber.NewError(fiber.StatusInternalServerError, "cannot save resume file")
	}

	text, err := h.extractText(savePath)
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusInternalServerError, "failed to extract resume text")
	}
	return savePath, text, nil
}

func (h *CandidateHandler) MyApplications(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	apps, err := h.apps.ListByCandidate(c.Context(), actor.ID)
	if err != nil {
		return util.DomainErrorResponse(c, err)
	}

	result := make([]dto.ApplicationSummaryDTO, 0, len(apps))
	for _, app := range apps {
		summary := dto.ApplicationSummaryDTO{
			ApplicationID: app.ID,
			Status:        app.Status,
			AppliedAt:     app.AppliedAt,
		}
		if job, err := h.jobs.Get(c.Context(), app.JobID.String()); err == nil {
			summary.JobTitle = job.Title
			summary.JobDescription = job.Description
		}
		if iv, err := h.interviews.FindByApplication(c.Context(), app.ID.String()); err == nil {
			summary.HasInterview = true
			summary.InterviewID = &iv.ID
			status := iv.Status
			summary.InterviewStatus = &status
		}
		result = append(result, summary)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get applications",
		Data:    result,
	})
}

func (h *CandidateHandler) ApplicationState(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	app, err := h.apps.GetState(c.Context(), c.Params("id"), actor.ID)
	if err != nil {
		return util.DomainErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get application",
		Data:    dto.NewApplicationDTO(app),
	})
}

func (h *CandidateHandler) InterviewState(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	iv, err := h.interviews.GetState(c.Context(), c.Params("id"), actor.ID)
	if err != nil {
		return util.DomainErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get interview",
		Data:    dto.NewInterviewStateDTO(iv),
	})
}

func (h *CandidateHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Answer) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "question_id and answer are required",
		}, err)
	}

	actor := middleware.ActorFrom(c)
	result, err := h.interviews.SubmitAnswer(c.Context(), c.Params("id"), actor.ID, req.QuestionID, req.Answer)
	if err != nil {
		return util.DomainErrorResponse(c, err)
	}

	data := dto.SubmitAnswerDTO{Completed: result.Completed}
	if result.Completed {
		data.Score = result.Interview.Score
		data.Analysis = result.Interview.Analysis
	} else {
		next := len(result.Interview.Answers)
		data.NextQuestion = &next
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Answer submitted successfully",
		Data:    data,
	})
}

func (h *CandidateHandler) RetryEvaluation(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	iv, err := h.interviews.RetryEvaluation(c.Context(), c.Params("id"), actor.ID)
	if err != nil {
		return util.DomainErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Evaluation completed",
		Data:    dto.NewInterviewStateDTO(iv),
	})
}
