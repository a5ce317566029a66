package scenario

import (
	"math/rand"

	"github.com/KateRC21/ambudispatch/pkg/apperror"
)

// DefaultMinCount and DefaultMaxCount are the source's default range for
// the emergency count. GenerateSet does not apply them: it always takes
// an explicit n.
const (
	DefaultMinCount = 3
	DefaultMaxCount = 5
)

// MinCount and MaxCount bound the external-interface contract for n
// (spec.md §6): a caller may request anywhere in this range, which is
// wider than DefaultMinCount..DefaultMaxCount.
const (
	MinCount = 1
	MaxCount = 100
)

// SampleEmergency draws one emergency with the given id from rng: a
// severity chosen uniformly among the three bands (33.33% each,
// independent of any other draw), and a required speed uniform within
// that severity's band.
func SampleEmergency(id int, bands Bands, rng *rand.Rand) Emergency {
	sev := Severity(rng.Intn(3))
	band := bands.ByS(sev)
	speed := band.Min + rng.Float64()*band.Width()

	return Emergency{
		ID:               id,
		Severity:         sev,
		RequiredSpeedKMH: speed,
	}
}

// GenerateSet produces n emergencies (unbound destinations) with
// required speeds drawn from the severity bands implied by [rMin,
// rMax], using a PRNG seeded by seed. Fails with CodeInvalidRange if
// rMin >= rMax or n is outside [MinCount, MaxCount].
func GenerateSet(n int, rMin, rMax float64, seed int64) ([]Emergency, error) {
	if n < MinCount || n > MaxCount {
		return nil, apperror.New(apperror.CodeInvalidRange,
			"emergency count must be within the external-interface contract range")
	}

	bands, err := BuildSeverityBands(rMin, rMax)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	emergencies := make([]Emergency, n)
	for i := 0; i < n; i++ {
		emergencies[i] = SampleEmergency(i+1, bands, rng)
	}

	return emergencies, nil
}

// ResampleSpeeds recomputes severity bands from new (rMin, rMax) and
// redraws only RequiredSpeedKMH for each emergency within its existing
// severity's band; id, severity, and destination are left untouched.
func ResampleSpeeds(emergencies []Emergency, rMin, rMax float64, seed int64) ([]Emergency, error) {
	bands, err := BuildSeverityBands(rMin, rMax)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	updated := make([]Emergency, len(emergencies))
	for i, e := range emergencies {
		band := bands.ByS(e.Severity)
		e.RequiredSpeedKMH = band.Min + rng.Float64()*band.Width()
		updated[i] = e
	}

	return updated, nil
}
