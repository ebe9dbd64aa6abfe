package handlers

import (
	"net/http"

	"github.com/may5296007/Projetweb2/internal/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	formService *services.FormService
}

func NewQuestionHandler(formService *services.FormService) *QuestionHandler {
	return &QuestionHandler{formService: formService}
}

type QuestionRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255" example:"Description du cours"`
	Type        string `json:"type" binding:"omitempty,oneof=text textarea number date" example:"textarea"`
	Required    *bool  `json:"required" example:"true"`
	Placeholder string `json:"placeholder" example:"Entrez une description détaillée..."`
	AIRule      string `json:"ai_rule" binding:"required" example:"Vérifier que la description contient au moins 100 mots et mentionne les objectifs"`
	MinLength   int    `json:"min_length" binding:"min=0" example:"100"`
	MaxLength   int    `json:"max_length" binding:"min=0" example:"0"`
}

func (r QuestionRequest) toInput() services.QuestionInput {
	return services.QuestionInput{
		Title:       r.Title,
		Type:        r.Type,
		Required:    r.Required,
		Placeholder: r.Placeholder,
		AIRule:      r.AIRule,
		MinLength:   r.MinLength,
		MaxLength:   r.MaxLength,
	}
}

// AddQuestion godoc
// @Summary      Add a question to a form
// @Tags         forms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Form ID"
// @Param        request body QuestionRequest true "Question data"
// @Success      201 {object} Question
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/forms/{id}/questions [post]
func (h *QuestionHandler) AddQuestion(c *gin.Context) {
	formID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form id"})
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.formService.AddQuestion(formID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary      Update a question
// @Tags         forms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Form ID"
// @Param        qid path int true "Question ID"
// @Param        request body QuestionRequest true "Question data"
// @Success      200 {object} Question
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/forms/{id}/questions/{qid} [put]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	formID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form id"})
		return
	}
	questionID, err := parseID(c, "qid")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.formService.UpdateQuestion(formID, questionID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// RemoveQuestion godoc
// @Summary      Remove a question
// @Description  Delete a question; existing plan responses keep their title snapshot
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Form ID"
// @Param        qid path int true "Question ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/forms/{id}/questions/{qid} [delete]
func (h *QuestionHandler) RemoveQuestion(c *gin.Context) {
	formID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form id"})
		return
	}
	questionID, err := parseID(c, "qid")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	if err := h.formService.RemoveQuestion(formID, questionID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "question removed"})
}
