package generator

// Config drives the synthetic data generator.
type Config struct {
	NumUsers               int
	NumProducts            int
	RecommendationsPerUser int
	// CoverageChance is the probability that a user has any row in the
	// recommendations dataset.
	CoverageChance float64
	// UnknownGenderChance is the probability of a gender code other than M or F.
	UnknownGenderChance float64
	Seed                int64
}

// DefaultConfig returns settings sized for a local demo.
func DefaultConfig() Config {
	return Config{
		NumUsers:               1000,
		NumProducts:            500,
		RecommendationsPerUser: 3,
		CoverageChance:         0.9,
		UnknownGenderChance:    0.05,
		Seed:                   42,
	}
}
