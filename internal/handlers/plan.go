package handlers

import (
	"net/http"
	"strings"

	"github.com/may5296007/Projetweb2/internal/services"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planService       *services.PlanService
	formService       *services.FormService
	authService       *services.AuthService
	validationService *services.ValidationService
}

func NewPlanHandler(planService *services.PlanService, formService *services.FormService,
	authService *services.AuthService, validationService *services.ValidationService) *PlanHandler {
	return &PlanHandler{
		planService:       planService,
		formService:       formService,
		authService:       authService,
		validationService: validationService,
	}
}

type CreatePlanRequest struct {
	CourseCode string `json:"course_code" binding:"required,min=1,max=50" example:"420-1W1-AA"`
	CourseName string `json:"course_name" binding:"required,min=1,max=255" example:"Programmation Web"`
	Session    string `json:"session" example:"Automne 2025"`
}

type SaveResponsesRequest struct {
	Responses []services.ResponseInput `json:"responses" binding:"required"`
}

type ValidateRequest struct {
	QuestionID uint `json:"question_id" binding:"required" example:"3"`
}

// ListPlans godoc
// @Summary      List my plans
// @Description  Get the signed-in teacher's plans, newest first
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Plan
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	teacherID := c.GetUint("user_id")

	plans, err := h.planService.ListByTeacher(teacherID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

// CreatePlan godoc
// @Summary      Create a plan
// @Description  Create a draft plan bound to the currently active form
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePlanRequest true "Course info"
// @Success      201 {object} Plan
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	teacherID := c.GetUint("user_id")

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	teacher, err := h.authService.GetUser(teacherID)
	if err != nil {
		respondError(c, err)
		return
	}

	plan, err := h.planService.Create(teacher, services.PlanInput{
		CourseCode: req.CourseCode,
		CourseName: req.CourseName,
		Session:    req.Session,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// GetPlan godoc
// @Summary      Get a plan
// @Description  Get one of the signed-in teacher's plans with responses and validations
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Plan ID"
// @Success      200 {object} Plan
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/plans/{id} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	teacherID := c.GetUint("user_id")
	planID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid plan id"})
		return
	}

	plan, err := h.planService.GetOwned(planID, teacherID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// SaveResponses godoc
// @Summary      Save plan responses
// @Description  Replace the plan's answers; stale validations of changed answers are discarded
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Plan ID"
// @Param        request body SaveResponsesRequest true "Responses"
// @Success      200 {object} Plan
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/plans/{id}/responses [put]
func (h *PlanHandler) SaveResponses(c *gin.Context) {
	teacherID := c.GetUint("user_id")
	planID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid plan id"})
		return
	}

	var req SaveResponsesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	plan, err := h.planService.SaveResponses(planID, teacherID, req.Responses)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// ValidateAnswer godoc
// @Summary      Validate one answer
// @Description  Check the saved answer against the question's rule, via the AI reviewer or the local analyzer
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Plan ID"
// @Param        request body ValidateRequest true "Question to validate"
// @Success      200 {object} Validation
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/plans/{id}/validate [post]
func (h *PlanHandler) ValidateAnswer(c *gin.Context) {
	teacherID := c.GetUint("user_id")
	planID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid plan id"})
		return
	}

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	plan, err := h.planService.GetOwned(planID, teacherID)
	if err != nil {
		respondError(c, err)
		return
	}

	question, err := h.planService.FindQuestion(plan, req.QuestionID)
	if err != nil {
		respondError(c, err)
		return
	}

	answer, ok := services.ResponseAnswer(plan, req.QuestionID)
	if !ok || strings.TrimSpace(answer) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: services.ErrEmptyAnswer.Error()})
		return
	}

	validation, err := h.validationService.ValidateResponse(plan, question, answer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, validation)
}

// GetStats godoc
// @Summary      Plan completion stats
// @Description  Answered/validated/total counters; the client uses them to gate and confirm submission
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Plan ID"
// @Success      200 {object} services.CompletionStats
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/plans/{id}/stats [get]
func (h *PlanHandler) GetStats(c *gin.Context) {
	teacherID := c.GetUint("user_id")
	planID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid plan id"})
		return
	}

	plan, err := h.planService.GetOwned(planID, teacherID)
	if err != nil {
		respondError(c, err)
		return
	}

	form, err := h.formService.GetFormByID(plan.FormID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.planService.Stats(plan, form))
}

// SubmitPlan godoc
// @Summary      Submit a plan
// @Description  Render and store the PDF, then move the plan to submitted
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Plan ID"
// @Success      200 {object} Plan
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /api/v1/plans/{id}/submit [post]
func (h *PlanHandler) SubmitPlan(c *gin.Context) {
	teacherID := c.GetUint("user_id")
	planID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid plan id"})
		return
	}

	plan, err := h.planService.Submit(planID, teacherID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeletePlan godoc
// @Summary      Delete a plan
// @Description  Delete one of the signed-in teacher's drafts
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Plan ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	teacherID := c.GetUint("user_id")
	planID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid plan id"})
		return
	}

	if err := h.planService.Delete(planID, teacherID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "plan deleted"})
}
