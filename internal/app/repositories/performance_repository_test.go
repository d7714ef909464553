package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformanceRepository_Averages(t *testing.T) {
	mock := newMock(t)
	repo := NewPerformanceRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT AVG(cgpa), AVG(iq) FROM students")).
		WillReturnRows(pgxmock.NewRows([]string{"avg", "avg"}).AddRow(fp(7.845), fp(104.5)))

	avg, err := repo.Averages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7.845, *avg.AvgCGPA)
	assert.Equal(t, 104.5, *avg.AvgIQ)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPerformanceRepository_PlacementCounts(t *testing.T) {
	mock := newMock(t)
	repo := NewPerformanceRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*), COUNT(*) FILTER (WHERE predicted_status = 'Yes') FROM predictions")).
		WillReturnRows(pgxmock.NewRows([]string{"count", "count"}).AddRow(int64(8), int64(5)))

	counts, err := repo.PlacementCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), counts.Total)
	assert.Equal(t, int64(5), counts.Placed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPerformanceRepository_TopPerformers(t *testing.T) {
	mock := newMock(t)
	repo := NewPerformanceRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, cgpa FROM students WHERE cgpa IS NOT NULL ORDER BY cgpa DESC, id ASC LIMIT 5")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "cgpa"}).
			AddRow(int64(3), "Chen", 9.6).
			AddRow(int64(1), "Asha", 8.4))

	top, err := repo.TopPerformers(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Chen", top[0].Name)
	assert.Equal(t, 9.6, top[0].CGPA)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPerformanceRepository_SkillDistribution(t *testing.T) {
	mock := newMock(t)
	repo := NewPerformanceRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM skills s LEFT JOIN student_skills ss ON s.id = ss.skill_id GROUP BY s.name")).
		WillReturnRows(pgxmock.NewRows([]string{"skill", "count"}).
			AddRow("Go", int64(4)).
			AddRow("SQL", int64(0)))

	dist, err := repo.SkillDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, dist, 2)
	assert.Equal(t, "SQL", dist[1].Skill)
	assert.Equal(t, int64(0), dist[1].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
