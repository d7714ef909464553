package models

import "time"

// Student defines the student model based on the 'students' table.
// Academic fields are nullable so a record can exist before it is complete
// enough to predict on.
type Student struct {
	ID                   int64     `json:"id" db:"id" example:"1"`
	Name                 string    `json:"name" db:"name" example:"Asha Rao"`
	Email                string    `json:"email" db:"email" example:"asha@college.edu"`
	CGPA                 *float64  `json:"cgpa" db:"cgpa" example:"8.2"`
	IQ                   *float64  `json:"iq" db:"iq" example:"112"`
	PrevSemResult        *float64  `json:"prev_sem_result" db:"prev_sem_result" example:"7.9"`
	AcademicPerformance  *float64  `json:"academic_performance" db:"academic_performance" example:"8"`
	CommunicationSkills  *float64  `json:"communication_skills" db:"communication_skills" example:"7"`
	ExtraCurricularScore *float64  `json:"extra_curricular_score" db:"extra_curricular_score" example:"6"`
	ProjectsCompleted    *int      `json:"projects_completed" db:"projects_completed" example:"3"`
	InternshipExperience *bool     `json:"internship_experience" db:"internship_experience" example:"true"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// MissingPredictionFields lists the column names of required prediction
// inputs that are null, in feature order.
func (s *Student) MissingPredictionFields() []string {
	var missing []string
	if s.IQ == nil {
		missing = append(missing, "iq")
	}
	if s.PrevSemResult == nil {
		missing = append(missing, "prev_sem_result")
	}
	if s.CGPA == nil {
		missing = append(missing, "cgpa")
	}
	if s.AcademicPerformance == nil {
		missing = append(missing, "academic_performance")
	}
	if s.ExtraCurricularScore == nil {
		missing = append(missing, "extra_curricular_score")
	}
	if s.CommunicationSkills == nil {
		missing = append(missing, "communication_skills")
	}
	if s.ProjectsCompleted == nil {
		missing = append(missing, "projects_completed")
	}
	if s.InternshipExperience == nil {
		missing = append(missing, "internship_experience")
	}
	return missing
}

// FeatureVector builds the classifier input. Callers must check
// MissingPredictionFields first.
func (s *Student) FeatureVector() FeatureVector {
	internship := 0
	if *s.InternshipExperience {
		internship = 1
	}
	projects := *s.ProjectsCompleted
	return FeatureVector{
		IQ:                      s.IQ,
		PrevSemResult:           s.PrevSemResult,
		CGPA:                    s.CGPA,
		AcademicPerformance:     s.AcademicPerformance,
		ExtraCurricularScore:    s.ExtraCurricularScore,
		CommunicationSkills:     s.CommunicationSkills,
		ProjectsCompleted:       &projects,
		InternshipExperienceYes: &internship,
	}
}

// Skill is a named skill students can be tagged with
type Skill struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
