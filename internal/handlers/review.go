package handlers

import (
	"net/http"
	"strconv"

	"github.com/may5296007/Projetweb2/internal/services"

	"github.com/gin-gonic/gin"
)

// ReviewHandler carries the admin side of the approval cycle.
type ReviewHandler struct {
	planService *services.PlanService
	userService *services.UserService
}

func NewReviewHandler(planService *services.PlanService, userService *services.UserService) *ReviewHandler {
	return &ReviewHandler{planService: planService, userService: userService}
}

type RevisionRequest struct {
	Comments string `json:"comments" binding:"required" example:"Précisez les méthodes d'évaluation."`
}

type RoleRequest struct {
	Role string `json:"role" binding:"required,oneof=teacher admin" example:"admin"`
}

// ListAllPlans godoc
// @Summary      List all plans
// @Description  Admin listing with optional teacher_id, status and session filters, newest first
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        teacher_id query int false "Filter by teacher"
// @Param        status query string false "Filter by status" Enums(draft, submitted, approved, revision)
// @Param        session query string false "Filter by session"
// @Success      200 {array} Plan
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/admin/plans [get]
func (h *ReviewHandler) ListAllPlans(c *gin.Context) {
	filters := services.PlanFilters{
		Status:  c.Query("status"),
		Session: c.Query("session"),
	}
	if raw := c.Query("teacher_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid teacher_id"})
			return
		}
		filters.TeacherID = uint(id)
	}

	plans, err := h.planService.ListAll(filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

// GetPlanForReview godoc
// @Summary      Get any plan
// @Description  Admin view of a plan with responses and validations
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Plan ID"
// @Success      200 {object} Plan
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/plans/{id} [get]
func (h *ReviewHandler) GetPlanForReview(c *gin.Context) {
	planID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid plan id"})
		return
	}

	plan, err := h.planService.GetByID(planID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// ApprovePlan godoc
// @Summary      Approve a submitted plan
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Plan ID"
// @Success      200 {object} Plan
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/admin/plans/{id}/approve [post]
func (h *ReviewHandler) ApprovePlan(c *gin.Context) {
	planID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid plan id"})
		return
	}

	plan, err := h.planService.Approve(planID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// RequestRevision godoc
// @Summary      Send a plan back for revision
// @Description  Requires comment text; the teacher regains edit rights
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Plan ID"
// @Param        request body RevisionRequest true "Revision comments"
// @Success      200 {object} Plan
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/admin/plans/{id}/revision [post]
func (h *ReviewHandler) RequestRevision(c *gin.Context) {
	planID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid plan id"})
		return
	}

	var req RevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	plan, err := h.planService.RequestRevision(planID, req.Comments)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// ListTeachers godoc
// @Summary      List teachers
// @Description  Teacher accounts, for the admin review filters
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} User
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/admin/teachers [get]
func (h *ReviewHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.userService.GetTeachers()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, teachers)
}

// UpdateUserRole godoc
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Param        request body RoleRequest true "New role"
// @Success      200 {object} User
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/users/{id}/role [put]
func (h *ReviewHandler) UpdateUserRole(c *gin.Context) {
	userID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.userService.UpdateRole(userID, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
