package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/classifier"
)

func vector(cgpa float64, internship int) models.FeatureVector {
	return models.FeatureVector{
		IQ:                      fp(110),
		PrevSemResult:           fp(7.5),
		CGPA:                    fp(cgpa),
		AcademicPerformance:     fp(8),
		ExtraCurricularScore:    fp(6),
		CommunicationSkills:     fp(7),
		ProjectsCompleted:       ip(3),
		InternshipExperienceYes: ip(internship),
	}
}

func completeStudent(id int64) *models.Student {
	return &models.Student{
		ID:                   id,
		Name:                 "Asha",
		Email:                "asha@college.edu",
		CGPA:                 fp(8.4),
		IQ:                   fp(118),
		PrevSemResult:        fp(8.1),
		AcademicPerformance:  fp(9),
		CommunicationSkills:  fp(7),
		ExtraCurricularScore: fp(5),
		ProjectsCompleted:    ip(4),
		InternshipExperience: bp(true),
	}
}

type predictionFixture struct {
	svc        *PredictionService
	classifier *fakeClassifier
	log        *fakePredictionStore
	students   *fakeStudentStore
}

func newPredictionFixture(maxBatch int) *predictionFixture {
	c := &fakeClassifier{}
	log := &fakePredictionStore{}
	students := &fakeStudentStore{students: map[int64]*models.Student{7: completeStudent(7)}}
	m, _ := newTestMetrics()
	return &predictionFixture{
		svc:        NewPredictionService(c, log, students, m, zerolog.Nop(), maxBatch),
		classifier: c,
		log:        log,
		students:   students,
	}
}

func TestPredictBatch_PreservesOrderAndLength(t *testing.T) {
	fx := newPredictionFixture(0)

	res, err := fx.svc.PredictBatch(context.Background(), []models.FeatureVector{
		vector(9.1, 1), vector(6.0, 0), vector(8.0, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Yes", "No", "Yes"}, res.Labels)
	assert.NoError(t, res.Warning)
	assert.Equal(t, 1, fx.classifier.calls)

	require.Len(t, fx.log.records, 3)
	assert.Nil(t, fx.log.records[0].StudentID)
	assert.Equal(t, "No", fx.log.records[1].PredictedStatus)
}

func TestPredictBatch_RowsFollowFeatureOrder(t *testing.T) {
	fx := newPredictionFixture(0)

	_, err := fx.svc.PredictBatch(context.Background(), []models.FeatureVector{vector(8.1, 1)})
	require.NoError(t, err)
	require.Len(t, fx.classifier.rows, 1)
	assert.Len(t, fx.classifier.rows[0], classifier.FeatureCount)
	assert.Equal(t, []float64{110, 7.5, 8.1, 8, 6, 7, 3, 1}, fx.classifier.rows[0])
}

func TestPredictBatch_Empty(t *testing.T) {
	fx := newPredictionFixture(0)

	res, err := fx.svc.PredictBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, res.Labels)
	assert.Empty(t, res.Labels)
	assert.Zero(t, fx.classifier.calls)
	assert.Empty(t, fx.log.records)
}

func TestPredictBatch_NormalizesInternship(t *testing.T) {
	fx := newPredictionFixture(0)

	_, err := fx.svc.PredictBatch(context.Background(), []models.FeatureVector{vector(7, 4)})
	require.NoError(t, err)
	assert.Equal(t, 1.0, fx.classifier.rows[0][7])
	assert.Equal(t, 1, fx.log.records[0].InternshipExperienceYes)
}

func TestPredictBatch_IncompleteVectorRejectsBatch(t *testing.T) {
	fx := newPredictionFixture(0)
	partial := vector(8, 1)
	partial.CGPA = nil

	_, err := fx.svc.PredictBatch(context.Background(), []models.FeatureVector{vector(9, 1), partial})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Contains(t, err.Error(), "CGPA")
	assert.Zero(t, fx.classifier.calls)
}

func TestPredictBatch_SizeLimit(t *testing.T) {
	fx := newPredictionFixture(2)

	_, err := fx.svc.PredictBatch(context.Background(), []models.FeatureVector{vector(9, 1), vector(9, 1), vector(9, 1)})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Zero(t, fx.classifier.calls)
}

func TestPredictBatch_ClassifierFailure(t *testing.T) {
	fx := newPredictionFixture(0)
	fx.classifier.err = fmt.Errorf("%w: connection refused", classifier.ErrUnavailable)

	res, err := fx.svc.PredictBatch(context.Background(), []models.FeatureVector{vector(9, 1)})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, apperrors.ErrPredictionServiceUnavailable)
	assert.Empty(t, fx.log.records)
}

func TestPredictBatch_UnexpectedOutputs(t *testing.T) {
	cases := map[string][]int{
		"short":     {1},
		"bad value": {1, 2},
	}
	for name, outputs := range cases {
		t.Run(name, func(t *testing.T) {
			fx := newPredictionFixture(0)
			fx.classifier.outputs = outputs

			_, err := fx.svc.PredictBatch(context.Background(), []models.FeatureVector{vector(9, 1), vector(6, 0)})
			assert.ErrorIs(t, err, apperrors.ErrPredictionServiceUnavailable)
		})
	}
}

func TestPredictBatch_PersistenceFailureIsAWarning(t *testing.T) {
	c := &fakeClassifier{}
	log := &fakePredictionStore{err: errors.New("relation \"predictions\" does not exist")}
	m, reg := newTestMetrics()
	svc := NewPredictionService(c, log, &fakeStudentStore{}, m, zerolog.Nop(), 0)

	res, err := svc.PredictBatch(context.Background(), []models.FeatureVector{vector(9, 1), vector(6, 0)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Yes", "No"}, res.Labels)
	assert.ErrorIs(t, res.Warning, apperrors.ErrPersistenceWarning)
	assert.Equal(t, 2.0, counterValue(t, reg, "placement_prediction_persistence_failures_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "placement_prediction_labels_total", "mode", "batch", "label", "Yes"))
}

func TestPredictForStudent_Success(t *testing.T) {
	fx := newPredictionFixture(0)

	res, err := fx.svc.PredictForStudent(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Yes", res.Label)
	assert.Equal(t, "Asha", res.Student.Name)
	assert.Equal(t, 1, *res.Features.InternshipExperienceYes)
	assert.NoError(t, res.Warning)

	require.Len(t, fx.log.records, 1)
	require.NotNil(t, fx.log.records[0].StudentID)
	assert.Equal(t, int64(7), *fx.log.records[0].StudentID)
}

func TestPredictForStudent_MissingCGPA(t *testing.T) {
	fx := newPredictionFixture(0)
	fx.students.students[7].CGPA = nil

	_, err := fx.svc.PredictForStudent(context.Background(), 7)
	require.ErrorIs(t, err, apperrors.ErrIncompleteData)

	var incomplete *apperrors.IncompleteDataError
	require.True(t, errors.As(err, &incomplete))
	assert.Contains(t, incomplete.MissingFields, "cgpa")
	assert.Zero(t, fx.classifier.calls)
	assert.Empty(t, fx.log.records)
}

func TestPredictForStudent_NotFound(t *testing.T) {
	fx := newPredictionFixture(0)

	_, err := fx.svc.PredictForStudent(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.Zero(t, fx.classifier.calls)
}

func TestPredictForStudent_PersistenceFailureStillReturnsLabel(t *testing.T) {
	fx := newPredictionFixture(0)
	fx.log.err = errors.New("disk full")

	res, err := fx.svc.PredictForStudent(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Yes", res.Label)
	assert.ErrorIs(t, res.Warning, apperrors.ErrPersistenceWarning)
}

func TestPredictForStudent_ClassifierUnavailable(t *testing.T) {
	fx := newPredictionFixture(0)
	fx.classifier.err = classifier.ErrUnavailable

	_, err := fx.svc.PredictForStudent(context.Background(), 7)
	assert.ErrorIs(t, err, apperrors.ErrPredictionServiceUnavailable)
	assert.NotErrorIs(t, err, apperrors.ErrIncompleteData)
}
