package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/pkg/logger"
)

// PerformanceRepository runs the aggregate queries behind the performance routes
type PerformanceRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPerformanceRepository creates a new performance repository
func NewPerformanceRepository(db DBTX) *PerformanceRepository {
	return &PerformanceRepository{db: db, sb: statementBuilder()}
}

// Averages returns AVG(cgpa) and AVG(iq); both are nil on an empty table
func (r *PerformanceRepository) Averages(ctx context.Context) (*models.PerformanceAverages, error) {
	query, args, err := r.sb.
		Select("AVG(cgpa)", "AVG(iq)").
		From("students").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build averages query: %w", err)
	}

	var avg models.PerformanceAverages
	if err := r.db.QueryRow(ctx, query, args...).Scan(&avg.AvgCGPA, &avg.AvgIQ); err != nil {
		logger.Error().Err(err).Msg("Error computing student averages")
		return nil, fmt.Errorf("error computing averages: %w", err)
	}
	return &avg, nil
}

// PlacementCounts counts all predictions and those labelled Yes
func (r *PerformanceRepository) PlacementCounts(ctx context.Context) (*models.PlacementCounts, error) {
	query, args, err := r.sb.
		Select("COUNT(*)", "COUNT(*) FILTER (WHERE predicted_status = 'Yes')").
		From("predictions").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build placement query: %w", err)
	}

	var counts models.PlacementCounts
	if err := r.db.QueryRow(ctx, query, args...).Scan(&counts.Total, &counts.Placed); err != nil {
		logger.Error().Err(err).Msg("Error counting predictions")
		return nil, fmt.Errorf("error counting predictions: %w", err)
	}
	return &counts, nil
}

// TopPerformers returns up to limit students with the highest CGPA
func (r *PerformanceRepository) TopPerformers(ctx context.Context, limit uint64) ([]models.TopPerformer, error) {
	query, args, err := r.sb.
		Select("id", "name", "cgpa").
		From("students").
		Where(squirrel.NotEq{"cgpa": nil}).
		OrderBy("cgpa DESC", "id ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build top performers query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing top performers")
		return nil, fmt.Errorf("error listing top performers: %w", err)
	}
	defer rows.Close()

	top := make([]models.TopPerformer, 0, limit)
	for rows.Next() {
		var p models.TopPerformer
		if err := rows.Scan(&p.ID, &p.Name, &p.CGPA); err != nil {
			return nil, fmt.Errorf("error scanning top performer: %w", err)
		}
		top = append(top, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top performers: %w", err)
	}
	return top, nil
}

// SkillDistribution counts tagged students per skill, including skills nobody has
func (r *PerformanceRepository) SkillDistribution(ctx context.Context) ([]models.SkillCount, error) {
	query, args, err := r.sb.
		Select("s.name AS skill", "COUNT(ss.student_id) AS count").
		From("skills s").
		LeftJoin("student_skills ss ON s.id = ss.skill_id").
		GroupBy("s.name").
		OrderBy("s.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build skill distribution query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error computing skill distribution")
		return nil, fmt.Errorf("error computing skill distribution: %w", err)
	}
	defer rows.Close()

	dist := make([]models.SkillCount, 0)
	for rows.Next() {
		var sc models.SkillCount
		if err := rows.Scan(&sc.Skill, &sc.Count); err != nil {
			return nil, fmt.Errorf("error scanning skill count: %w", err)
		}
		dist = append(dist, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skill counts: %w", err)
	}
	return dist, nil
}
