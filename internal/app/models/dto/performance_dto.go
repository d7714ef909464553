package dto

import "github.com/yigit/placement/internal/app/models"

// PerformanceSummary aggregates student and prediction statistics
type PerformanceSummary struct {
	AverageCGPA   float64 `json:"average_cgpa" example:"7.84"`
	AverageIQ     float64 `json:"average_iq" example:"104.5"`
	PlacementRate float64 `json:"placement_rate" example:"62.5"`
}

// TopPerformersResponse lists the highest CGPAs
type TopPerformersResponse struct {
	TopPerformers []models.TopPerformer `json:"top_performers"`
}

// SkillDistributionResponse counts students per skill
type SkillDistributionResponse struct {
	SkillDistribution []models.SkillCount `json:"skill_distribution"`
}
