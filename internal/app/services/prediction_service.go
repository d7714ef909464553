package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/classifier"
	"github.com/yigit/placement/internal/pkg/metrics"
)

// Entry modes, used as the mode label on the prediction counter
const (
	modeBatch   = "batch"
	modeStudent = "student"
)

// PredictionStore appends to the prediction log
type PredictionStore interface {
	CreateMany(ctx context.Context, records []*models.PredictionRecord) error
}

// StudentReader loads a single student
type StudentReader interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// BatchResult holds one label per submitted vector, in input order
type BatchResult struct {
	Labels []string
	// Warning is non-nil when the labels were computed but not recorded
	Warning error
}

// StudentResult is the prediction for a stored student
type StudentResult struct {
	Student  *models.Student
	Features models.FeatureVector
	Label    string
	Warning  error
}

// PredictionService validates feature data, runs the classifier and records
// every outcome.
type PredictionService struct {
	classifier     classifier.Classifier
	predictionRepo PredictionStore
	studentRepo    StudentReader
	metrics        *metrics.Manager
	logger         zerolog.Logger
	maxBatchSize   int
}

// NewPredictionService creates a new prediction service. A maxBatchSize of
// zero disables the batch limit.
func NewPredictionService(
	c classifier.Classifier,
	predictionRepo PredictionStore,
	studentRepo StudentReader,
	m *metrics.Manager,
	logger zerolog.Logger,
	maxBatchSize int,
) *PredictionService {
	return &PredictionService{
		classifier:     c,
		predictionRepo: predictionRepo,
		studentRepo:    studentRepo,
		metrics:        m,
		logger:         logger,
		maxBatchSize:   maxBatchSize,
	}
}

// PredictBatch labels directly submitted vectors. Every vector must carry all
// eight features; one incomplete vector rejects the whole batch before the
// classifier runs.
func (s *PredictionService) PredictBatch(ctx context.Context, vectors []models.FeatureVector) (*BatchResult, error) {
	if len(vectors) == 0 {
		return &BatchResult{Labels: []string{}}, nil
	}
	if s.maxBatchSize > 0 && len(vectors) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: batch of %d exceeds the limit of %d", apperrors.ErrValidationFailed, len(vectors), s.maxBatchSize)
	}

	normalized := make([]models.FeatureVector, len(vectors))
	for i, v := range vectors {
		if missing := v.MissingFields(); len(missing) > 0 {
			return nil, fmt.Errorf("%w: item %d is missing %s", apperrors.ErrValidationFailed, i, strings.Join(missing, ", "))
		}
		normalized[i] = v.Normalized()
	}

	labels, err := s.classify(ctx, normalized)
	if err != nil {
		return nil, err
	}

	records := make([]*models.PredictionRecord, len(normalized))
	for i, v := range normalized {
		records[i] = models.NewPredictionRecord(nil, v, labels[i])
		s.metrics.RecordPrediction(modeBatch, labels[i])
	}

	return &BatchResult{
		Labels:  labels,
		Warning: s.persist(ctx, records),
	}, nil
}

// PredictForStudent labels a stored student. A student with any required
// field unset yields *apperrors.IncompleteDataError and the classifier is
// not called.
func (s *PredictionService) PredictForStudent(ctx context.Context, studentID int64) (*StudentResult, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if missing := student.MissingPredictionFields(); len(missing) > 0 {
		return nil, &apperrors.IncompleteDataError{MissingFields: missing}
	}

	features := student.FeatureVector().Normalized()
	labels, err := s.classify(ctx, []models.FeatureVector{features})
	if err != nil {
		return nil, err
	}
	label := labels[0]
	s.metrics.RecordPrediction(modeStudent, label)

	id := student.ID
	warning := s.persist(ctx, []*models.PredictionRecord{models.NewPredictionRecord(&id, features, label)})

	return &StudentResult{
		Student:  student,
		Features: features,
		Label:    label,
		Warning:  warning,
	}, nil
}

// classify runs the classifier once over all rows. Every failure, including
// an unexpected output, becomes ErrPredictionServiceUnavailable.
func (s *PredictionService) classify(ctx context.Context, vectors []models.FeatureVector) ([]string, error) {
	rows := make([][]float64, len(vectors))
	for i, v := range vectors {
		rows[i] = v.Values()
	}

	start := time.Now()
	raw, err := s.classifier.Predict(ctx, rows)
	if err == nil && len(raw) != len(rows) {
		err = fmt.Errorf("%w: got %d outputs for %d rows", classifier.ErrUnavailable, len(raw), len(rows))
	}

	var labels []string
	if err == nil {
		labels = make([]string, len(raw))
		for i, r := range raw {
			if labels[i], err = classifier.Label(r); err != nil {
				break
			}
		}
	}
	s.metrics.ObserveClassifier(s.classifier.Name(), time.Since(start).Seconds(), err != nil)

	if err != nil {
		s.logger.Error().Err(err).Str("classifier", s.classifier.Name()).Int("rows", len(rows)).Msg("Classifier call failed")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPredictionServiceUnavailable, err)
	}
	return labels, nil
}

// persist records the outcomes. A failure is downgraded to a warning.
func (s *PredictionService) persist(ctx context.Context, records []*models.PredictionRecord) error {
	err := s.predictionRepo.CreateMany(ctx, records)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		s.logger.Warn().Int("records", len(records)).Msg("Prediction not recorded, request cancelled")
	} else {
		s.logger.Warn().Err(err).Int("records", len(records)).Msg("Prediction computed but not recorded")
	}
	for range records {
		s.metrics.RecordPersistenceFailure()
	}
	return apperrors.ErrPersistenceWarning
}
