package dto

import "app/internal/model"

// ModuleCountResponse is a per-module usage count.
type ModuleCountResponse struct {
	Module string `json:"module"`
	Count  int    `json:"count"`
}

// ModuleAverageResponse is a per-module score average. The average is a
// whole number, rounded half-up.
type ModuleAverageResponse struct {
	Module  string `json:"module"`
	Average int    `json:"average"`
	Count   int    `json:"count"`
}

// StatsResponse is the aggregated statistics snapshot.
type StatsResponse struct {
	TotalUsers     int                     `json:"totalUsers"`
	TotalUsage     int                     `json:"totalUsage"`
	UsageByModule  []ModuleCountResponse   `json:"usageByModule"`
	AverageScores  []ModuleAverageResponse `json:"averageScores"`
	RecentActivity []UsageResponse         `json:"recentActivity"`
}

// NewStatsResponse maps a domain stats snapshot to its response shape.
func NewStatsResponse(stats *model.Stats) StatsResponse {
	counts := make([]ModuleCountResponse, 0, len(stats.UsageByModule))
	for _, c := range stats.UsageByModule {
		counts = append(counts, ModuleCountResponse{Module: c.Module.String(), Count: c.Count})
	}
	averages := make([]ModuleAverageResponse, 0, len(stats.AverageScores))
	for _, a := range stats.AverageScores {
		averages = append(averages, ModuleAverageResponse{
			Module:  a.Module.String(),
			Average: a.Average,
			Count:   a.Count,
		})
	}
	return StatsResponse{
		TotalUsers:     stats.TotalUsers,
		TotalUsage:     stats.TotalUsage,
		UsageByModule:  counts,
		AverageScores:  averages,
		RecentActivity: NewUsageResponses(stats.RecentActivity),
	}
}
