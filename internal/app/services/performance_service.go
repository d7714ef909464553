package services

import (
	"context"

	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/pkg/helpers"
)

const topPerformersLimit = 5

// PerformanceStore runs the aggregate queries
type PerformanceStore interface {
	Averages(ctx context.Context) (*models.PerformanceAverages, error)
	PlacementCounts(ctx context.Context) (*models.PlacementCounts, error)
	TopPerformers(ctx context.Context, limit uint64) ([]models.TopPerformer, error)
	SkillDistribution(ctx context.Context) ([]models.SkillCount, error)
}

// PerformanceService computes the dashboard statistics
type PerformanceService struct {
	performanceRepo PerformanceStore
}

// NewPerformanceService creates a new performance service instance
func NewPerformanceService(performanceRepo PerformanceStore) *PerformanceService {
	return &PerformanceService{performanceRepo: performanceRepo}
}

// Summary returns average CGPA and IQ and the share of Yes predictions, as a
// percentage. Empty tables yield zeros.
func (s *PerformanceService) Summary(ctx context.Context) (*dto.PerformanceSummary, error) {
	avg, err := s.performanceRepo.Averages(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.performanceRepo.PlacementCounts(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.PerformanceSummary{}
	if avg.AvgCGPA != nil {
		summary.AverageCGPA = helpers.Round2(*avg.AvgCGPA)
	}
	if avg.AvgIQ != nil {
		summary.AverageIQ = helpers.Round2(*avg.AvgIQ)
	}
	if counts.Total > 0 {
		summary.PlacementRate = helpers.Round2(float64(counts.Placed) / float64(counts.Total) * 100)
	}
	return summary, nil
}

// TopPerformers returns the five highest CGPAs
func (s *PerformanceService) TopPerformers(ctx context.Context) (*dto.TopPerformersResponse, error) {
	top, err := s.performanceRepo.TopPerformers(ctx, topPerformersLimit)
	if err != nil {
		return nil, err
	}
	return &dto.TopPerformersResponse{TopPerformers: top}, nil
}

// SkillDistribution returns the number of students per skill
func (s *PerformanceService) SkillDistribution(ctx context.Context) (*dto.SkillDistributionResponse, error) {
	dist, err := s.performanceRepo.SkillDistribution(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SkillDistributionResponse{SkillDistribution: dist}, nil
}
