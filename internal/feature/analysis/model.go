package analysis

import "time"

// AnalysisModel defines the character_analysis schema for migration.
// Append-only: rows are a cache of a pure computation over their stored
// inputs, never mutated, so there is no updated_at.
type AnalysisModel struct {
	ID            int64   `gorm:"primaryKey;autoIncrement"`
	Input1        string  `gorm:"size:255;not null"`
	Input2        string  `gorm:"size:255;not null"`
	Percentage    float64 `gorm:"type:decimal(5,2);not null"`
	MatchingChars string  `gorm:"column:matching_chars;type:text"`
	CreatedAt     time.Time
}

func (AnalysisModel) TableName() string { return "character_analysis" }
