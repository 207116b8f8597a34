package model

// ModuleCount is the number of usage records observed for one module.
type ModuleCount struct {
	Module Module `json:"module"`
	Count  int    `json:"count"`
}

// ModuleAverage is the rounded mean score for one module, with the number of
// contributing records. Modules with no scores are absent, not zero.
type ModuleAverage struct {
	Module  Module `json:"module"`
	Average int    `json:"average"`
	Count   int    `json:"count"`
}

// Stats is the aggregate snapshot computed on demand over all records.
type Stats struct {
	TotalUsers     int             `json:"totalUsers"`
	TotalUsage     int             `json:"totalUsage"`
	UsageByModule  []ModuleCount   `json:"usageByModule"`
	AverageScores  []ModuleAverage `json:"averageScores"`
	RecentActivity []Usage         `json:"recentActivity"`
}
