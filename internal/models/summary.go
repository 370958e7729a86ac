package models

// OrchardSummary aggregates tree counts by health category
type OrchardSummary struct {
	TotalTrees    int `json:"total_trees"`
	HealthyTrees  int `json:"healthy_trees"`
	AtRiskTrees   int `json:"at_risk_trees"` // warning
	DiseasedTrees int `json:"diseased_trees"`

	// Rounded to the nearest integer percent, 0 when there is no data
	HealthyPercent  int `json:"healthy_percent"`
	AtRiskPercent   int `json:"at_risk_percent"`
	DiseasedPercent int `json:"diseased_percent"`

	HasData bool `json:"has_data"`
}

// SectionShare is an orchard section with its share of all trees
type SectionShare struct {
	Section
	SharePercent int `json:"share_percent"`
}
