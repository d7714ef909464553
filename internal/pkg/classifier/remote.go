package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultRemoteTimeout = 15 * time.Second
	maxResponseBytes     = 1 << 20
)

// RemoteClient calls a model service over HTTP. A single attempt is made
// per Predict call.
type RemoteClient struct {
	url        string
	httpClient *http.Client
}

// NewRemoteClient creates a client for endpoint. A zero timeout means 15s.
func NewRemoteClient(endpoint string, timeout time.Duration) (*RemoteClient, error) {
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid classifier remote url %q", endpoint)
	}
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &RemoteClient{
		url:        endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Name implements Classifier.
func (c *RemoteClient) Name() string { return ModeRemote }

type remoteRow struct {
	IQ                      float64 `json:"IQ"`
	PrevSemResult           float64 `json:"Prev_Sem_Result"`
	CGPA                    float64 `json:"CGPA"`
	AcademicPerformance     float64 `json:"Academic_Performance"`
	ExtraCurricularScore    float64 `json:"Extra_Curricular_Score"`
	CommunicationSkills     float64 `json:"Communication_Skills"`
	ProjectsCompleted       int     `json:"Projects_Completed"`
	InternshipExperienceYes int     `json:"Internship_Experience_Yes"`
}

type remoteResponse struct {
	Prediction  json.RawMessage   `json:"prediction"`
	Predictions []json.RawMessage `json:"predictions"`
}

// Predict implements Classifier.
func (c *RemoteClient) Predict(ctx context.Context, rows [][]float64) ([]int, error) {
	if err := checkRows(rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	payload := make([]remoteRow, len(rows))
	for i, r := range rows {
		payload[i] = remoteRow{
			IQ:                      r[0],
			PrevSemResult:           r[1],
			CGPA:                    r[2],
			AcademicPerformance:     r[3],
			ExtraCurricularScore:    r[4],
			CommunicationSkills:     r[5],
			ProjectsCompleted:       int(r[6]),
			InternshipExperienceYes: int(r[7]),
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: model service returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var decoded remoteResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}

	items := decoded.Predictions
	if items == nil && len(decoded.Prediction) > 0 {
		items = []json.RawMessage{decoded.Prediction}
	}
	if len(items) != len(rows) {
		return nil, fmt.Errorf("%w: got %d predictions for %d rows", ErrUnavailable, len(items), len(rows))
	}

	out := make([]int, len(items))
	for i, item := range items {
		v, err := parseRemoteLabel(item)
		if err != nil {
			return nil, fmt.Errorf("%w: prediction %d: %v", ErrUnavailable, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// parseRemoteLabel accepts "Yes"/"No" or 0/1.
func parseRemoteLabel(raw json.RawMessage) (int, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes":
			return 1, nil
		case "no":
			return 0, nil
		}
		return 0, fmt.Errorf("unknown label %q", s)
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("unsupported value %s", string(raw))
	}
	switch n {
	case 0:
		return 0, nil
	case 1:
		return 1, nil
	}
	return 0, fmt.Errorf("unknown label %v", n)
}
