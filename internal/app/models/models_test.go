package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }
func b(v bool) *bool       { return &v }

func completeStudent() *Student {
	return &Student{
		ID:                   7,
		Name:                 "Asha",
		Email:                "asha@college.edu",
		CGPA:                 f(8.4),
		IQ:                   f(118),
		PrevSemResult:        f(8.1),
		AcademicPerformance:  f(9),
		CommunicationSkills:  f(7),
		ExtraCurricularScore: f(5),
		ProjectsCompleted:    i(4),
		InternshipExperience: b(true),
	}
}

func TestStudent_MissingPredictionFields(t *testing.T) {
	s := completeStudent()
	assert.Empty(t, s.MissingPredictionFields())

	s.CGPA = nil
	s.InternshipExperience = nil
	assert.Equal(t, []string{"cgpa", "internship_experience"}, s.MissingPredictionFields())
}

func TestStudent_FeatureVectorOrderAndNormalization(t *testing.T) {
	s := completeStudent()
	v := s.FeatureVector()

	assert.Empty(t, v.MissingFields())
	assert.Equal(t, []float64{118, 8.1, 8.4, 9, 5, 7, 4, 1}, v.Values())

	s.InternshipExperience = b(false)
	assert.Equal(t, 0.0, s.FeatureVector().Values()[7])
}

func TestFeatureVector_DecodeDetectsAbsentKeys(t *testing.T) {
	var batch []FeatureVector
	err := json.Unmarshal([]byte(`[
		{"IQ":100,"Prev_Sem_Result":7,"CGPA":0,"Academic_Performance":8,"Extra_Curricular_Score":6,"Communication_Skills":7,"Projects_Completed":0,"Internship_Experience_Yes":0},
		{"IQ":100,"Prev_Sem_Result":7,"Academic_Performance":8,"Extra_Curricular_Score":6,"Communication_Skills":7,"Projects_Completed":2}
	]`), &batch)
	require.NoError(t, err)
	require.Len(t, batch, 2)

	assert.Empty(t, batch[0].MissingFields(), "zero values are present values")
	assert.Equal(t, []string{"CGPA", "Internship_Experience_Yes"}, batch[1].MissingFields())
}

func TestFeatureVector_Normalized(t *testing.T) {
	v := completeStudent().FeatureVector()
	v.InternshipExperienceYes = i(5)

	n := v.Normalized()
	assert.Equal(t, 1, *n.InternshipExperienceYes)
	assert.Equal(t, 5, *v.InternshipExperienceYes, "original untouched")

	v.InternshipExperienceYes = i(0)
	assert.Equal(t, 0, *v.Normalized().InternshipExperienceYes)
}

func TestNewPredictionRecord(t *testing.T) {
	id := int64(7)
	rec := NewPredictionRecord(&id, completeStudent().FeatureVector(), "Yes")

	assert.Equal(t, &id, rec.StudentID)
	assert.Equal(t, 8.4, rec.CGPA)
	assert.Equal(t, 1, rec.InternshipExperienceYes)
	assert.Equal(t, "Yes", rec.PredictedStatus)
}

func TestAdmin_HashNeverSerialized(t *testing.T) {
	out, err := json.Marshal(Admin{ID: 1, Username: "admin", PasswordHash: "$2b$12$secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "secret")
	assert.NotContains(t, string(out), "password")
}
