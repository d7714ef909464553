package dto

// CreateStudentRequest adds a student. Academic fields may be filled in later.
type CreateStudentRequest struct {
	Name                 string   `json:"name" binding:"required,notblank,max=255"`
	Email                string   `json:"email" binding:"required,email,max=255"`
	CGPA                 *float64 `json:"cgpa" binding:"omitempty,gte=0"`
	IQ                   *float64 `json:"iq" binding:"omitempty,gte=0"`
	PrevSemResult        *float64 `json:"prev_sem_result" binding:"omitempty,gte=0"`
	AcademicPerformance  *float64 `json:"academic_performance" binding:"omitempty,gte=0"`
	CommunicationSkills  *float64 `json:"communication_skills" binding:"omitempty,gte=0"`
	ExtraCurricularScore *float64 `json:"extra_curricular_score" binding:"omitempty,gte=0"`
	ProjectsCompleted    *int     `json:"projects_completed" binding:"omitempty,gte=0"`
	InternshipExperience *bool    `json:"internship_experience"`
}

// UpdateStudentRequest carries only the fields to change
type UpdateStudentRequest struct {
	Name                 *string  `json:"name" binding:"omitempty,notblank,max=255"`
	Email                *string  `json:"email" binding:"omitempty,email,max=255"`
	CGPA                 *float64 `json:"cgpa" binding:"omitempty,gte=0"`
	IQ                   *float64 `json:"iq" binding:"omitempty,gte=0"`
	PrevSemResult        *float64 `json:"prev_sem_result" binding:"omitempty,gte=0"`
	AcademicPerformance  *float64 `json:"academic_performance" binding:"omitempty,gte=0"`
	CommunicationSkills  *float64 `json:"communication_skills" binding:"omitempty,gte=0"`
	ExtraCurricularScore *float64 `json:"extra_curricular_score" binding:"omitempty,gte=0"`
	ProjectsCompleted    *int     `json:"projects_completed" binding:"omitempty,gte=0"`
	InternshipExperience *bool    `json:"internship_experience"`
}

// StudentCreatedResponse returns the new row id
type StudentCreatedResponse struct {
	StudentID int64 `json:"student_id" example:"12"`
}
