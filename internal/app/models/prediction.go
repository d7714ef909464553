package models

import "time"

// FeatureVector is one classifier input. Pointer fields let a decoder tell
// an absent key from a zero value.
type FeatureVector struct {
	IQ                      *float64 `json:"IQ" example:"110"`
	PrevSemResult           *float64 `json:"Prev_Sem_Result" example:"7.5"`
	CGPA                    *float64 `json:"CGPA" example:"8.1"`
	AcademicPerformance     *float64 `json:"Academic_Performance" example:"8"`
	ExtraCurricularScore    *float64 `json:"Extra_Curricular_Score" example:"6"`
	CommunicationSkills     *float64 `json:"Communication_Skills" example:"7"`
	ProjectsCompleted       *int     `json:"Projects_Completed" example:"3"`
	InternshipExperienceYes *int     `json:"Internship_Experience_Yes" example:"1"`
}

// MissingFields returns the JSON names of absent fields, in feature order.
func (v FeatureVector) MissingFields() []string {
	var missing []string
	if v.IQ == nil {
		missing = append(missing, "IQ")
	}
	if v.PrevSemResult == nil {
		missing = append(missing, "Prev_Sem_Result")
	}
	if v.CGPA == nil {
		missing = append(missing, "CGPA")
	}
	if v.AcademicPerformance == nil {
		missing = append(missing, "Academic_Performance")
	}
	if v.ExtraCurricularScore == nil {
		missing = append(missing, "Extra_Curricular_Score")
	}
	if v.CommunicationSkills == nil {
		missing = append(missing, "Communication_Skills")
	}
	if v.ProjectsCompleted == nil {
		missing = append(missing, "Projects_Completed")
	}
	if v.InternshipExperienceYes == nil {
		missing = append(missing, "Internship_Experience_Yes")
	}
	return missing
}

// Normalized returns a copy with Internship_Experience_Yes folded to 0/1.
func (v FeatureVector) Normalized() FeatureVector {
	if v.InternshipExperienceYes != nil && *v.InternshipExperienceYes != 0 && *v.InternshipExperienceYes != 1 {
		one := 1
		v.InternshipExperienceYes = &one
	}
	return v
}

// Values returns the fields in classifier column order. The vector must be
// complete.
func (v FeatureVector) Values() []float64 {
	return []float64{
		*v.IQ,
		*v.PrevSemResult,
		*v.CGPA,
		*v.AcademicPerformance,
		*v.ExtraCurricularScore,
		*v.CommunicationSkills,
		float64(*v.ProjectsCompleted),
		float64(*v.InternshipExperienceYes),
	}
}

// PredictionRecord defines a row of the append-only 'predictions' table
type PredictionRecord struct {
	ID                      int64     `json:"id" db:"id"`
	StudentID               *int64    `json:"student_id" db:"student_id"`
	IQ                      float64   `json:"IQ" db:"iq"`
	PrevSemResult           float64   `json:"Prev_Sem_Result" db:"prev_sem_result"`
	CGPA                    float64   `json:"CGPA" db:"cgpa"`
	AcademicPerformance     float64   `json:"Academic_Performance" db:"academic_performance"`
	ExtraCurricularScore    float64   `json:"Extra_Curricular_Score" db:"extra_curricular_score"`
	CommunicationSkills     float64   `json:"Communication_Skills" db:"communication_skills"`
	ProjectsCompleted       int       `json:"Projects_Completed" db:"projects_completed"`
	InternshipExperienceYes int       `json:"Internship_Experience_Yes" db:"internship_experience_yes"`
	PredictedStatus         string    `json:"predicted_status" db:"predicted_status"`
	CreatedAt               time.Time `json:"created_at" db:"created_at"`
}

// NewPredictionRecord builds a record from a complete, normalized vector
func NewPredictionRecord(studentID *int64, v FeatureVector, label string) *PredictionRecord {
	return &PredictionRecord{
		StudentID:               studentID,
		IQ:                      *v.IQ,
		PrevSemResult:           *v.PrevSemResult,
		CGPA:                    *v.CGPA,
		AcademicPerformance:     *v.AcademicPerformance,
		ExtraCurricularScore:    *v.ExtraCurricularScore,
		CommunicationSkills:     *v.CommunicationSkills,
		ProjectsCompleted:       *v.ProjectsCompleted,
		InternshipExperienceYes: *v.InternshipExperienceYes,
		PredictedStatus:         label,
	}
}
