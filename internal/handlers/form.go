package handlers

import (
	"net/http"
	"strconv"

	"github.com/may5296007/Projetweb2/internal/services"

	"github.com/gin-gonic/gin"
)

type FormHandler struct {
	formService *services.FormService
}

func NewFormHandler(formService *services.FormService) *FormHandler {
	return &FormHandler{formService: formService}
}

type FormRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255" example:"Plan de cours A2025"`
	Description string `json:"description" example:"Gabarit institutionnel"`
	Session     string `json:"session" example:"Automne 2025"`
	Department  string `json:"department" example:"Informatique"`
}

type ReorderRequest struct {
	Index     int `json:"index" binding:"min=0" example:"2"`
	Direction int `json:"direction" binding:"required,oneof=-1 1" example:"-1"`
}

// ListForms godoc
// @Summary      List all forms
// @Description  Get every questionnaire definition with its questions
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Form
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/forms [get]
func (h *FormHandler) ListForms(c *gin.Context) {
	forms, err := h.formService.GetForms()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, forms)
}

// GetActiveForm godoc
// @Summary      Get the active form
// @Description  Get the single form currently presented to teachers for new plans
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} Form
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/forms/active [get]
func (h *FormHandler) GetActiveForm(c *gin.Context) {
	form, err := h.formService.GetActiveForm()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// CreateForm godoc
// @Summary      Create a form
// @Tags         forms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body FormRequest true "Form data"
// @Success      201 {object} Form
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/forms [post]
func (h *FormHandler) CreateForm(c *gin.Context) {
	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	form, err := h.formService.CreateForm(services.FormInput{
		Title:       req.Title,
		Description: req.Description,
		Session:     req.Session,
		Department:  req.Department,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, form)
}

// GetForm godoc
// @Summary      Get a form
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Form ID"
// @Success      200 {object} Form
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/forms/{id} [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	formID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form id"})
		return
	}

	form, err := h.formService.GetFormByID(formID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// UpdateForm godoc
// @Summary      Update a form
// @Tags         forms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Form ID"
// @Param        request body FormRequest true "Form data"
// @Success      200 {object} Form
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/forms/{id} [put]
func (h *FormHandler) UpdateForm(c *gin.Context) {
	formID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form id"})
		return
	}

	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	form, err := h.formService.UpdateForm(formID, services.FormInput{
		Title:       req.Title,
		Description: req.Description,
		Session:     req.Session,
		Department:  req.Department,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// DeleteForm godoc
// @Summary      Delete a form
// @Description  Delete an inactive form and its questions
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Form ID"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/forms/{id} [delete]
func (h *FormHandler) DeleteForm(c *gin.Context) {
	formID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form id"})
		return
	}

	if err := h.formService.DeleteForm(formID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "form deleted"})
}

// ReorderQuestion godoc
// @Summary      Move a question up or down
// @Description  Swap the question at index with its neighbour; boundary moves are a no-op
// @Tags         forms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Form ID"
// @Param        request body ReorderRequest true "Index and direction (-1 up, 1 down)"
// @Success      200 {object} services.ReorderResult
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/forms/{id}/reorder [put]
func (h *FormHandler) ReorderQuestion(c *gin.Context) {
	formID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form id"})
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.formService.ReorderQuestion(formID, req.Index, req.Direction)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ActivateForm godoc
// @Summary      Activate a form
// @Description  Make this form the single active one; fails unless it has at least 10 questions
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Form ID"
// @Success      200 {object} Form
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/forms/{id}/activate [post]
func (h *FormHandler) ActivateForm(c *gin.Context) {
	formID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form id"})
		return
	}

	form, err := h.formService.Activate(formID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(id), err
}
