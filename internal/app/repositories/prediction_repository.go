package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/pkg/logger"
)

// predictionColumns is the bind parameter count of one inserted row.
var predictionColumns = []string{
	"student_id", "iq", "prev_sem_result", "cgpa", "academic_performance",
	"extra_curricular_score", "communication_skills", "projects_completed",
	"internship_experience_yes", "predicted_status",
}

// maxInsertRows keeps one INSERT under Postgres's 65535 bind parameters.
var maxInsertRows = 65535 / len(predictionColumns)

// PredictionRepository appends to the prediction log
type PredictionRepository struct {
	db        DBTX
	sb        squirrel.StatementBuilderType
	chunkRows int
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db DBTX) *PredictionRepository {
	return &PredictionRepository{db: db, sb: statementBuilder(), chunkRows: maxInsertRows}
}

// CreateMany writes all records. Batches too large for one statement are
// split into chunks inside a single transaction, so the log never holds a
// partial batch.
func (r *PredictionRepository) CreateMany(ctx context.Context, records []*models.PredictionRecord) error {
	if len(records) == 0 {
		return nil
	}
	if len(records) <= r.chunkRows {
		return r.insert(ctx, r.db, records)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		logger.Error().Err(err).Int("records", len(records)).Msg("Error starting prediction insert transaction")
		return fmt.Errorf("error starting prediction transaction: %w", err)
	}
	for start := 0; start < len(records); start += r.chunkRows {
		end := min(start+r.chunkRows, len(records))
		if err := r.insert(ctx, tx, records[start:end]); err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Warn().Err(rbErr).Msg("Error rolling back prediction insert")
			}
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		logger.Error().Err(err).Int("records", len(records)).Msg("Error committing prediction records")
		return fmt.Errorf("error committing predictions: %w", err)
	}
	return nil
}

func (r *PredictionRepository) insert(ctx context.Context, db DBTX, records []*models.PredictionRecord) error {
	insert := r.sb.
		Insert("predictions").
		Columns(predictionColumns...)
	for _, rec := range records {
		insert = insert.Values(rec.StudentID, rec.IQ, rec.PrevSemResult, rec.CGPA, rec.AcademicPerformance,
			rec.ExtraCurricularScore, rec.CommunicationSkills, rec.ProjectsCompleted,
			rec.InternshipExperienceYes, rec.PredictedStatus)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build prediction insert: %w", err)
	}

	if _, err := db.Exec(ctx, query, args...); err != nil {
		logger.Error().Err(err).Int("records", len(records)).Msg("Error inserting prediction records")
		return fmt.Errorf("error inserting predictions: %w", err)
	}
	return nil
}
