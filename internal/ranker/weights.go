package ranker

import (
	"fmt"
	"math"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/model"
)

// Dimension names. These are the only keys a weight configuration may carry,
// and the keys of every ranking's explain map.
const (
	DimLocation       = "location_match"
	DimSalary         = "salary_match"
	DimEmployerSize   = "company_size_match"
	DimSkills         = "skills_match"
	DimKeyword        = "keyword_match"
	DimEmploymentType = "employment_type_match"
	DimSeniority      = "seniority_match"
	DimRemoteType     = "remote_type_match"
	DimRecency        = "recency"
)

// Dimensions lists all scoring dimensions in their canonical order.
var Dimensions = []string{
	DimLocation,
	DimSalary,
	DimEmployerSize,
	DimSkills,
	DimKeyword,
	DimEmploymentType,
	DimSeniority,
	DimRemoteType,
	DimRecency,
}

// Weights maps dimension names to percentages. A valid set covers only known
// dimensions, every value is in [0,100], and the values sum to 100 within
// sumTolerance. Dimensions absent from the map carry weight 0.
type Weights map[string]float64

const sumTolerance = 0.1

// DefaultWeights returns the system default weight set (sums to 100).
func DefaultWeights() Weights {
	return Weights{
		DimLocation:       15,
		DimSalary:         15,
		DimEmployerSize:   5,
		DimSkills:         20,
		DimKeyword:        15,
		DimEmploymentType: 5,
		DimSeniority:      10,
		DimRemoteType:     10,
		DimRecency:        5,
	}
}

// ParseWeights validates a campaign's raw weight map. A nil map selects the
// system defaults. Any violation returns a ConfigurationError and no Weights.
func ParseWeights(raw map[string]float64) (Weights, error) {
	if raw == nil {
		return DefaultWeights(), nil
	}

	known := make(map[string]bool, len(Dimensions))
	for _, d := range Dimensions {
		known[d] = true
	}

	sum := 0.0
	for key, value := range raw {
		if !known[key] {
			return nil, &model.ConfigurationError{
				Field:  "weights",
				Reason: fmt.Sprintf("unknown dimension %q", key),
			}
		}
		if value < 0 || value > 100 {
			return nil, &model.ConfigurationError{
				Field:  "weights." + key,
				Reason: fmt.Sprintf("value %g out of range [0,100]", value),
			}
		}
		sum += value
	}

	if math.Abs(sum-100) > sumTolerance {
		return nil, &model.ConfigurationError{
			Field:  "weights",
			Reason: fmt.Sprintf("values sum to %g, want 100 ± %g", sum, sumTolerance),
		}
	}

	w := make(Weights, len(raw))
	for key, value := range raw {
		w[key] = value
	}
	return w, nil
}
