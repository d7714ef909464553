package services

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/metrics"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }
func bp(v bool) *bool       { return &v }

func newTestMetrics() (*metrics.Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return metrics.NewManager(metrics.WithRegistry(reg)), reg
}

// counterValue sums every series of the named counter
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels ...string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
	metric:
		for _, m := range mf.GetMetric() {
			for i := 0; i+1 < len(labels); i += 2 {
				found := false
				for _, lp := range m.GetLabel() {
					if lp.GetName() == labels[i] && lp.GetValue() == labels[i+1] {
						found = true
					}
				}
				if !found {
					continue metric
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

type fakeAdminStore struct {
	admins      map[string]*models.Admin
	err         error
	updatedID   int64
	updatedHash string
}

func (f *fakeAdminStore) GetByUsername(_ context.Context, username string) (*models.Admin, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.admins[username]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return a, nil
}

func (f *fakeAdminStore) UpdatePassword(_ context.Context, id int64, hash string) error {
	f.updatedID = id
	f.updatedHash = hash
	return f.err
}

type fakeTokenIssuer struct {
	subjects []string
	err      error
}

func (f *fakeTokenIssuer) GenerateAccessToken(subject string) (string, int, error) {
	if f.err != nil {
		return "", 0, f.err
	}
	f.subjects = append(f.subjects, subject)
	return "token-for-" + subject, 3600, nil
}

type fakeClassifier struct {
	outputs []int
	err     error
	calls   int
	rows    [][]float64
}

func (f *fakeClassifier) Name() string { return "fake" }

func (f *fakeClassifier) Predict(_ context.Context, rows [][]float64) ([]int, error) {
	f.calls++
	f.rows = rows
	if f.err != nil {
		return nil, f.err
	}
	if f.outputs != nil {
		return f.outputs, nil
	}
	out := make([]int, len(rows))
	for i, r := range rows {
		// CGPA at or above 8 is placed
		if r[2] >= 8 {
			out[i] = 1
		}
	}
	return out, nil
}

type fakePredictionStore struct {
	records []*models.PredictionRecord
	err     error
}

func (f *fakePredictionStore) CreateMany(_ context.Context, records []*models.PredictionRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, records...)
	return nil
}

type fakeStudentStore struct {
	students map[int64]*models.Student
	nextID   int64
	created  *models.Student
	updated  map[string]any
	err      error
}

func (f *fakeStudentStore) Create(_ context.Context, s *models.Student) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	f.created = s
	return f.nextID, nil
}

func (f *fakeStudentStore) List(_ context.Context) ([]*models.Student, error) {
	out := make([]*models.Student, 0, len(f.students))
	for _, s := range f.students {
		out = append(out, s)
	}
	return out, f.err
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return s, nil
}

func (f *fakeStudentStore) Update(_ context.Context, id int64, fields map[string]any) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	f.updated = fields
	return f.err
}

func (f *fakeStudentStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

type fakePerformanceStore struct {
	avg    *models.PerformanceAverages
	counts *models.PlacementCounts
	limit  uint64
	err    error
}

func (f *fakePerformanceStore) Averages(context.Context) (*models.PerformanceAverages, error) {
	return f.avg, f.err
}

func (f *fakePerformanceStore) PlacementCounts(context.Context) (*models.PlacementCounts, error) {
	return f.counts, f.err
}

func (f *fakePerformanceStore) TopPerformers(_ context.Context, limit uint64) ([]models.TopPerformer, error) {
	f.limit = limit
	return []models.TopPerformer{{ID: 1, Name: "Asha", CGPA: 9.1}}, f.err
}

func (f *fakePerformanceStore) SkillDistribution(context.Context) ([]models.SkillCount, error) {
	return []models.SkillCount{{Skill: "Go", Count: 2}}, f.err
}
