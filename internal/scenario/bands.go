package scenario

import "github.com/KateRC21/ambudispatch/pkg/apperror"

// Band is a closed required-speed interval [Min, Max], in km/h.
type Band struct {
	Min float64
	Max float64
}

// Width returns the band's span.
func (b Band) Width() float64 {
	return b.Max - b.Min
}

// Bands holds the three severity bands produced by BuildSeverityBands.
type Bands struct {
	Leve  Band
	Media Band
	Grave Band
}

// ByS returns the band for the given severity.
func (b Bands) ByS(sev Severity) Band {
	switch sev {
	case SeverityLeve:
		return b.Leve
	case SeverityMedia:
		return b.Media
	default:
		return b.Grave
	}
}

// BuildSeverityBands trisects [rMin, rMax] into three equal-width
// severity bands: leve gets the lowest third, media the middle third,
// grave the highest third. Fails with CodeInvalidRange if rMin >= rMax
// or either bound is non-positive.
func BuildSeverityBands(rMin, rMax float64) (Bands, error) {
	if rMin <= 0 || rMax <= 0 || rMin >= rMax {
		return Bands{}, apperror.New(apperror.CodeInvalidRange,
			"required-speed range must satisfy 0 < r_min < r_max")
	}

	third := (rMax - rMin) / 3.0
	a := rMin
	b := rMin + third
	c := rMin + 2*third
	d := rMax

	return Bands{
		Leve:  Band{Min: a, Max: b},
		Media: Band{Min: b, Max: c},
		Grave: Band{Min: c, Max: d},
	}, nil
}
