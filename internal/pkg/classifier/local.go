package classifier

import (
	"context"
	"fmt"
	"math"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

const defaultThreshold = 0.5

// Scaler holds StandardScaler parameters exported next to the model.
type Scaler struct {
	Mean  []float64 `yaml:"mean"`
	Scale []float64 `yaml:"scale"`
	// FitPerBatch standardizes each request on its own statistics
	// instead of the training ones.
	FitPerBatch bool `yaml:"fit_per_batch"`
}

// LinearModel is a logistic regression exported from the training pipeline.
type LinearModel struct {
	FeatureNames []string  `yaml:"feature_names"`
	Scaler       *Scaler   `yaml:"scaler"`
	Coefficients []float64 `yaml:"coefficients"`
	Intercept    float64   `yaml:"intercept"`
	Threshold    float64   `yaml:"threshold"`
}

// LoadModel reads and validates a model file.
func LoadModel(path string) (*LinearModel, error) {
	if path == "" {
		return nil, fmt.Errorf("classifier model path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	return ParseModel(data)
}

// ParseModel decodes a YAML model definition.
func ParseModel(data []byte) (*LinearModel, error) {
	var m LinearModel
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model file: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *LinearModel) validate() error {
	if !slices.Equal(m.FeatureNames, FeatureOrder) {
		return fmt.Errorf("model feature_names %v do not match %v", m.FeatureNames, FeatureOrder)
	}
	if len(m.Coefficients) != FeatureCount {
		return fmt.Errorf("model has %d coefficients, want %d", len(m.Coefficients), FeatureCount)
	}
	if m.Scaler != nil && !m.Scaler.FitPerBatch {
		if len(m.Scaler.Mean) != FeatureCount || len(m.Scaler.Scale) != FeatureCount {
			return fmt.Errorf("scaler needs %d means and scales", FeatureCount)
		}
		for i, s := range m.Scaler.Scale {
			if s == 0 {
				return fmt.Errorf("scaler scale for %s is zero", FeatureOrder[i])
			}
		}
	}
	if m.Threshold == 0 {
		m.Threshold = defaultThreshold
	}
	if m.Threshold <= 0 || m.Threshold >= 1 {
		return fmt.Errorf("threshold %v outside (0,1)", m.Threshold)
	}
	return nil
}

// Name implements Classifier.
func (m *LinearModel) Name() string { return ModeLocal }

// Predict implements Classifier.
func (m *LinearModel) Predict(ctx context.Context, rows [][]float64) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := checkRows(rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	mean, scale := m.scaling(rows)
	out := make([]int, len(rows))
	for i, row := range rows {
		if m.probability(row, mean, scale) >= m.Threshold {
			out[i] = 1
		}
	}
	return out, nil
}

// probability returns P(placed) for one standardized row.
func (m *LinearModel) probability(row, mean, scale []float64) float64 {
	z := m.Intercept
	for j, v := range row {
		z += m.Coefficients[j] * ((v - mean[j]) / scale[j])
	}
	return sigmoid(z)
}

func (m *LinearModel) scaling(rows [][]float64) (mean, scale []float64) {
	switch {
	case m.Scaler == nil:
		return make([]float64, FeatureCount), ones()
	case m.Scaler.FitPerBatch:
		return batchStats(rows)
	default:
		return m.Scaler.Mean, m.Scaler.Scale
	}
}

// batchStats mirrors StandardScaler.fit: population variance, and a scale
// of 1 for constant columns.
func batchStats(rows [][]float64) (mean, scale []float64) {
	mean = make([]float64, FeatureCount)
	scale = ones()
	if len(rows) == 0 {
		return mean, scale
	}
	n := float64(len(rows))
	for _, row := range rows {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= n
	}
	for j := range scale {
		var ss float64
		for _, row := range rows {
			d := row[j] - mean[j]
			ss += d * d
		}
		if sd := math.Sqrt(ss / n); sd > 0 {
			scale[j] = sd
		}
	}
	return mean, scale
}

func ones() []float64 {
	s := make([]float64, FeatureCount)
	for i := range s {
		s[i] = 1
	}
	return s
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
