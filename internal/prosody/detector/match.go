package detector

import "github.com/qawafi/arud/internal/prosody/meter"

// Quality buckets a confidence value
type Quality string

const (
	QualityExact    Quality = "exact"
	QualityStrong   Quality = "strong"
	QualityModerate Quality = "moderate"
	QualityWeak     Quality = "weak"
)

// QualityFor returns the bucket of a confidence value
func QualityFor(confidence float64) Quality {
	switch {
	case confidence >= 0.95:
		return QualityExact
	case confidence >= 0.85:
		return QualityStrong
	case confidence >= 0.75:
		return QualityModerate
	default:
		return QualityWeak
	}
}

// MeterMatch is one ranked detection result
type MeterMatch struct {
	MeterID     meter.ID `json:"meter_id"`
	Name        string   `json:"name"`
	BaseMeterID meter.ID `json:"base_meter_id"`
	Tier        int      `json:"tier"`
	Rank        int      `json:"rank"`
	Confidence  float64  `json:"confidence"`
	Similarity  float64  `json:"similarity"`
	Quality     Quality  `json:"quality"`
	// Pattern is the matched cached form, equal to the input for exact hits
	Pattern string `json:"pattern"`
	// Transformations holds one label per position: "base" or rule names
	Transformations []string `json:"transformations"`
	Explanation     string   `json:"explanation"`
	Exact           bool     `json:"exact"`
}

// Statistics summarizes the loaded grammar
type Statistics struct {
	TotalMeters    int         `json:"total_meters"`
	BaseMeters     int         `json:"base_meters"`
	TotalPatterns  int         `json:"total_patterns"`
	PatternsByTier map[int]int `json:"patterns_by_tier"`
	MetersByTier   map[int]int `json:"meters_by_tier"`
}
