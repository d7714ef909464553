package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool the repositories use. pgx.Tx and
// pgxmock satisfy it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Repositories holds all the repository instances
type Repositories struct {
	AdminRepository       *AdminRepository
	StudentRepository     *StudentRepository
	PredictionRepository  *PredictionRepository
	PerformanceRepository *PerformanceRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		AdminRepository:       NewAdminRepository(db),
		StudentRepository:     NewStudentRepository(db),
		PredictionRepository:  NewPredictionRepository(db),
		PerformanceRepository: NewPerformanceRepository(db),
	}
}
