package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/pkg/apperrors"
)

// StudentStore persists student records
type StudentStore interface {
	Create(ctx context.Context, s *models.Student) (int64, error)
	List(ctx context.Context) ([]*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}

// StudentService handles student CRUD
type StudentService struct {
	studentRepo StudentStore
	logger      zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentStore, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// Create stores a new student and returns its id
func (s *StudentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (int64, error) {
	student := &models.Student{
		Name:                 req.Name,
		Email:                req.Email,
		CGPA:                 req.CGPA,
		IQ:                   req.IQ,
		PrevSemResult:        req.PrevSemResult,
		AcademicPerformance:  req.AcademicPerformance,
		CommunicationSkills:  req.CommunicationSkills,
		ExtraCurricularScore: req.ExtraCurricularScore,
		ProjectsCompleted:    req.ProjectsCompleted,
		InternshipExperience: req.InternshipExperience,
	}
	if student.ProjectsCompleted == nil {
		zero := 0
		student.ProjectsCompleted = &zero
	}
	if student.InternshipExperience == nil {
		no := false
		student.InternshipExperience = &no
	}

	id, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("studentID", id).Msg("Student created")
	return id, nil
}

// List returns all students, newest first
func (s *StudentService) List(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.List(ctx)
}

// Get returns one student
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// Update applies only the fields present in req
func (s *StudentService) Update(ctx context.Context, id int64, req *dto.UpdateStudentRequest) error {
	fields := updateFields(req)
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields to update", apperrors.ErrValidationFailed)
	}

	if err := s.studentRepo.Update(ctx, id, fields); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", id).Int("fields", len(fields)).Msg("Student updated")
	return nil
}

// Delete removes a student
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}

func updateFields(req *dto.UpdateStudentRequest) map[string]any {
	fields := make(map[string]any)
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.CGPA != nil {
		fields["cgpa"] = *req.CGPA
	}
	if req.IQ != nil {
		fields["iq"] = *req.IQ
	}
	if req.PrevSemResult != nil {
		fields["prev_sem_result"] = *req.PrevSemResult
	}
	if req.AcademicPerformance != nil {
		fields["academic_performance"] = *req.AcademicPerformance
	}
	if req.CommunicationSkills != nil {
		fields["communication_skills"] = *req.CommunicationSkills
	}
	if req.ExtraCurricularScore != nil {
		fields["extra_curricular_score"] = *req.ExtraCurricularScore
	}
	if req.ProjectsCompleted != nil {
		fields["projects_completed"] = *req.ProjectsCompleted
	}
	if req.InternshipExperience != nil {
		fields["internship_experience"] = *req.InternshipExperience
	}
	return fields
}
