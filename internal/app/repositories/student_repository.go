package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/dberrors"
	"github.com/yigit/placement/internal/pkg/logger"
)

var studentColumns = []string{
	"id", "name", "email", "cgpa", "iq", "prev_sem_result",
	"academic_performance", "communication_skills", "extra_curricular_score",
	"projects_completed", "internship_experience", "created_at", "updated_at",
}

// StudentRepository handles database operations for students
type StudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{db: db, sb: statementBuilder()}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &s.CGPA, &s.IQ, &s.PrevSemResult,
		&s.AcademicPerformance, &s.CommunicationSkills, &s.ExtraCurricularScore,
		&s.ProjectsCompleted, &s.InternshipExperience, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a student and returns its id
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) (int64, error) {
	query, args, err := r.sb.
		Insert("students").
		Columns("name", "email", "cgpa", "iq", "prev_sem_result", "academic_performance",
			"communication_skills", "extra_curricular_score", "projects_completed", "internship_experience").
		Values(s.Name, s.Email, s.CGPA, s.IQ, s.PrevSemResult, s.AcademicPerformance,
			s.CommunicationSkills, s.ExtraCurricularScore, s.ProjectsCompleted, s.InternshipExperience).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build student insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrStudentEmailExists
		}
		logger.Error().Err(err).Msg("Error creating student")
		return 0, fmt.Errorf("error creating student: %w", err)
	}
	return id, nil
}

// List returns every student, newest first
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	query, args, err := r.sb.
		Select(studentColumns...).
		From("students").
		OrderBy("id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing students")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}
	return students, nil
}

// GetByID returns apperrors.ErrStudentNotFound when the row is absent
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query, args, err := r.sb.
		Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewStudentNotFoundError(id)
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error retrieving student")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return s, nil
}

// Update sets the given columns. Keys must be student column names.
func (r *StudentRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return apperrors.ErrValidationFailed
	}

	query, args, err := r.sb.
		Update("students").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build student update: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrStudentEmailExists
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error updating student")
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewStudentNotFoundError(id)
	}
	return nil
}

// Delete removes a student; prediction rows keep a null student_id
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.
		Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build student delete: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error deleting student")
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewStudentNotFoundError(id)
	}
	return nil
}
