package classifier

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cgpaOnlyModel = `
feature_names: [IQ, Prev_Sem_Result, CGPA, Academic_Performance, Extra_Curricular_Score, Communication_Skills, Projects_Completed, Internship_Experience_Yes]
coefficients: [0, 0, 1, 0, 0, 0, 0, 0]
intercept: -7
`

func row(cgpa float64) []float64 {
	return []float64{110, 7.5, cgpa, 8, 6, 7, 3, 1}
}

func TestParseModel_RawFeatures(t *testing.T) {
	m, err := ParseModel([]byte(cgpaOnlyModel))
	require.NoError(t, err)
	assert.Equal(t, 0.5, m.Threshold)
	assert.Equal(t, ModeLocal, m.Name())

	got, err := m.Predict(context.Background(), [][]float64{row(8), row(6), row(9.5)})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1}, got)

	mean, scale := m.scaling([][]float64{row(7)})
	assert.InDelta(t, 0.5, m.probability(row(7), mean, scale), 1e-9)
}

func TestParseModel_FixedScaler(t *testing.T) {
	m, err := ParseModel([]byte(`
feature_names: [IQ, Prev_Sem_Result, CGPA, Academic_Performance, Extra_Curricular_Score, Communication_Skills, Projects_Completed, Internship_Experience_Yes]
scaler:
  mean:  [100, 7, 7, 7, 5, 6, 2, 0.5]
  scale: [15, 1, 0.5, 1, 2, 2, 1, 0.5]
coefficients: [0, 0, 2, 0, 0, 0, 0, 0]
intercept: 0
threshold: 0.6
`))
	require.NoError(t, err)

	got, err := m.Predict(context.Background(), [][]float64{row(7.2), row(7), row(6.5)})
	require.NoError(t, err)
	// z = 2*(cgpa-7)/0.5 -> 0.8, 0, -2
	assert.Equal(t, []int{1, 0, 0}, got)
}

func TestParseModel_PerBatchScaler(t *testing.T) {
	m, err := ParseModel([]byte(`
feature_names: [IQ, Prev_Sem_Result, CGPA, Academic_Performance, Extra_Curricular_Score, Communication_Skills, Projects_Completed, Internship_Experience_Yes]
scaler:
  fit_per_batch: true
coefficients: [0, 0, 1, 0, 0, 0, 0, 0]
intercept: 0
`))
	require.NoError(t, err)

	got, err := m.Predict(context.Background(), [][]float64{row(6), row(8)})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, got)

	// A single row standardizes to zero, leaving only the intercept.
	got, err = m.Predict(context.Background(), [][]float64{row(9.9)})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got)
}

func TestParseModel_Rejects(t *testing.T) {
	cases := map[string]string{
		"wrong order": `
feature_names: [CGPA, IQ, Prev_Sem_Result, Academic_Performance, Extra_Curricular_Score, Communication_Skills, Projects_Completed, Internship_Experience_Yes]
coefficients: [0, 0, 1, 0, 0, 0, 0, 0]`,
		"short coefficients": `
feature_names: [IQ, Prev_Sem_Result, CGPA, Academic_Performance, Extra_Curricular_Score, Communication_Skills, Projects_Completed, Internship_Experience_Yes]
coefficients: [1, 2]`,
		"zero scale": `
feature_names: [IQ, Prev_Sem_Result, CGPA, Academic_Performance, Extra_Curricular_Score, Communication_Skills, Projects_Completed, Internship_Experience_Yes]
scaler: {mean: [0,0,0,0,0,0,0,0], scale: [1,1,0,1,1,1,1,1]}
coefficients: [0, 0, 1, 0, 0, 0, 0, 0]`,
		"bad threshold": `
feature_names: [IQ, Prev_Sem_Result, CGPA, Academic_Performance, Extra_Curricular_Score, Communication_Skills, Projects_Completed, Internship_Experience_Yes]
coefficients: [0, 0, 1, 0, 0, 0, 0, 0]
threshold: 1.5`,
		"not yaml": "feature_names: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseModel([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLinearModel_PredictErrors(t *testing.T) {
	m, err := ParseModel([]byte(cgpaOnlyModel))
	require.NoError(t, err)

	_, err = m.Predict(context.Background(), [][]float64{{1, 2, 3}})
	assert.ErrorIs(t, err, ErrUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Predict(ctx, [][]float64{row(8)})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNew_SelectsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cgpaOnlyModel), 0o600))

	c, err := New(Config{Mode: "LOCAL", ModelPath: path})
	require.NoError(t, err)
	assert.Equal(t, ModeLocal, c.Name())

	c, err = New(Config{Mode: ModeRemote, RemoteURL: "http://model:8000/predict"})
	require.NoError(t, err)
	assert.Equal(t, ModeRemote, c.Name())

	_, err = New(Config{Mode: "local", ModelPath: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
	_, err = New(Config{Mode: ModeRemote, RemoteURL: "model:8000"})
	assert.Error(t, err)
	_, err = New(Config{Mode: "onnx"})
	assert.Error(t, err)
}

func TestLabel(t *testing.T) {
	l, err := Label(1)
	require.NoError(t, err)
	assert.Equal(t, LabelYes, l)

	l, err = Label(0)
	require.NoError(t, err)
	assert.Equal(t, LabelNo, l)

	_, err = Label(2)
	assert.ErrorIs(t, err, ErrUnavailable)
}
