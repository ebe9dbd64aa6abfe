package handlers

import (
	"errors"
	"net/http"

	"github.com/may5296007/Projetweb2/internal/models"
	"github.com/may5296007/Projetweb2/internal/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Form = models.Form
type Question = models.Question
type Plan = models.Plan
type Validation = models.Validation
type User = models.User

// respondError maps the service error taxonomy to HTTP statuses. All
// failures are recoverable results for the caller; nothing here is
// fatal.
func respondError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var activation *services.ActivationError
	var incomplete *services.IncompleteSubmissionError
	var missingComment *services.MissingCommentError
	var transition *services.TransitionError
	var export *services.ExportError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.As(err, &activation), errors.As(err, &missingComment):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &incomplete):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.As(err, &export):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
