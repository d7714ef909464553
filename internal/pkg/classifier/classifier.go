// Package classifier wraps the pre-trained placement model. Predictions are
// computed either in-process from an exported linear model or by a remote
// model service speaking JSON over HTTP.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// FeatureOrder is the column order the model was trained on.
var FeatureOrder = []string{
	"IQ",
	"Prev_Sem_Result",
	"CGPA",
	"Academic_Performance",
	"Extra_Curricular_Score",
	"Communication_Skills",
	"Projects_Completed",
	"Internship_Experience_Yes",
}

// FeatureCount is len(FeatureOrder).
const FeatureCount = 8

const (
	LabelNo  = "No"
	LabelYes = "Yes"
)

const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

// ErrUnavailable wraps every failure to obtain predictions.
var ErrUnavailable = errors.New("classifier unavailable")

// Classifier maps feature rows (in FeatureOrder) to raw 0/1 outputs.
type Classifier interface {
	Predict(ctx context.Context, rows [][]float64) ([]int, error)
	Name() string
}

// Label maps a raw model output onto its class name.
func Label(raw int) (string, error) {
	switch raw {
	case 0:
		return LabelNo, nil
	case 1:
		return LabelYes, nil
	default:
		return "", fmt.Errorf("%w: unexpected model output %d", ErrUnavailable, raw)
	}
}

// Config selects and configures the classifier.
type Config struct {
	Mode      string
	ModelPath string
	RemoteURL string
	Timeout   time.Duration
}

// New builds the classifier selected by cfg.Mode. The local model is read
// from disk once, here.
func New(cfg Config) (Classifier, error) {
	switch strings.ToLower(cfg.Mode) {
	case "", ModeLocal:
		return LoadModel(cfg.ModelPath)
	case ModeRemote:
		return NewRemoteClient(cfg.RemoteURL, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown classifier mode %q", cfg.Mode)
	}
}

func checkRows(rows [][]float64) error {
	for i, row := range rows {
		if len(row) != FeatureCount {
			return fmt.Errorf("row %d has %d features, want %d", i, len(row), FeatureCount)
		}
	}
	return nil
}
