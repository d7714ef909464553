package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/app/services"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/helpers"
)

const notRecordedWarning = "prediction was computed but could not be recorded"

// PredictionHandler runs predictions
type PredictionHandler interface {
	PredictBatch(ctx context.Context, vectors []models.FeatureVector) (*services.BatchResult, error)
	PredictForStudent(ctx context.Context, studentID int64) (*services.StudentResult, error)
}

// PredictionController serves the prediction endpoints. Errors on these
// routes use the flat {error, missing_fields, message} body.
type PredictionController struct {
	predictionService PredictionHandler
	logger            zerolog.Logger
}

// NewPredictionController creates a new PredictionController
func NewPredictionController(predictionService PredictionHandler, logger zerolog.Logger) *PredictionController {
	return &PredictionController{
		predictionService: predictionService,
		logger:            logger,
	}
}

// PredictBatch labels a batch of feature vectors
// @Summary Predict placement for feature vectors
// @Description Returns one label per vector, in input order. Every vector must carry all eight features.
// @Tags prediction
// @Accept json
// @Produce json
// @Param request body []models.FeatureVector true "Feature vectors"
// @Success 200 {object} dto.PredictBatchResponse
// @Failure 400 {object} dto.PredictionErrorResponse "Malformed body or missing features"
// @Failure 503 {object} dto.PredictionErrorResponse "Classifier unavailable"
// @Router /predict [post]
func (c *PredictionController) PredictBatch(ctx *gin.Context) {
	var vectors []models.FeatureVector
	if err := ctx.ShouldBindJSON(&vectors); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.PredictionErrorResponse{
			Error:   "Invalid input",
			Message: "Body must be a JSON array of feature objects",
		})
		return
	}

	result, err := c.predictionService.PredictBatch(ctx.Request.Context(), vectors)
	if err != nil {
		c.handlePredictionError(ctx, err)
		return
	}

	resp := dto.PredictBatchResponse{
		InputCount:  len(vectors),
		Predictions: result.Labels,
	}
	if result.Warning != nil {
		resp.Warning = notRecordedWarning
	}
	ctx.JSON(http.StatusOK, resp)
}

// PredictForStudent labels a stored student
// @Summary Predict placement for a student
// @Description Reads the student's academic fields and runs the classifier. Incomplete records are rejected without a classifier call.
// @Tags prediction
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.StudentPredictionResponse
// @Failure 400 {object} dto.PredictionErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Could not validate credentials"
// @Failure 404 {object} dto.PredictionErrorResponse "Student not found"
// @Failure 422 {object} dto.PredictionErrorResponse "Incomplete student data"
// @Failure 503 {object} dto.PredictionErrorResponse "Classifier unavailable"
// @Router /predict/student/{id} [get]
func (c *PredictionController) PredictForStudent(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.PredictionErrorResponse{Error: "Invalid student ID"})
		return
	}

	result, err := c.predictionService.PredictForStudent(ctx.Request.Context(), id)
	if err != nil {
		c.handlePredictionError(ctx, err)
		return
	}

	resp := dto.StudentPredictionResponse{
		StudentID:    result.Student.ID,
		StudentName:  result.Student.Name,
		StudentEmail: result.Student.Email,
		Prediction:   result.Label,
		StudentData:  result.Features,
	}
	if result.Warning != nil {
		resp.Warning = notRecordedWarning
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *PredictionController) handlePredictionError(ctx *gin.Context, err error) {
	var incomplete *apperrors.IncompleteDataError

	switch {
	case errors.As(err, &incomplete):
		ctx.JSON(http.StatusUnprocessableEntity, dto.PredictionErrorResponse{
			Error:         "Incomplete student data",
			MissingFields: incomplete.MissingFields,
			Message:       "Fill in the missing fields before requesting a prediction",
		})
	case errors.Is(err, apperrors.ErrValidationFailed):
		ctx.JSON(http.StatusBadRequest, dto.PredictionErrorResponse{
			Error:   "Invalid input",
			Message: err.Error(),
		})
	case errors.Is(err, apperrors.ErrStudentNotFound):
		ctx.JSON(http.StatusNotFound, dto.PredictionErrorResponse{Error: "Student not found"})
	case errors.Is(err, apperrors.ErrPredictionServiceUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, dto.PredictionErrorResponse{
			Error:   "Prediction service unavailable",
			Message: "The classifier could not produce a prediction, try again later",
		})
	default:
		c.logger.Error().Err(err).Msg("Prediction request failed")
		ctx.JSON(http.StatusInternalServerError, dto.PredictionErrorResponse{Error: "Internal server error"})
	}
}
