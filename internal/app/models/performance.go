package models

// PerformanceAverages holds raw aggregates over the students table
type PerformanceAverages struct {
	AvgCGPA *float64
	AvgIQ   *float64
}

// PlacementCounts holds prediction outcome totals
type PlacementCounts struct {
	Total  int64
	Placed int64
}

// TopPerformer is a student ranked by CGPA
type TopPerformer struct {
	ID   int64   `json:"id" db:"id"`
	Name string  `json:"name" db:"name"`
	CGPA float64 `json:"CGPA" db:"cgpa"`
}

// SkillCount is the number of students tagged with a skill
type SkillCount struct {
	Skill string `json:"skill" db:"skill"`
	Count int64  `json:"count" db:"count"`
}
