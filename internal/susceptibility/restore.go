package susceptibility

import (
	"fmt"

	"github.com/seewhydee/meep/internal/noise"
)

// RecordLen returns the field count of a parameter record with the given
// model tag, zero for unknown tags.
func RecordLen(tag int) int {
	switch tag {
	case TagLorentzian:
		return 5
	case TagNoisyLorentzian:
		return 6
	case TagGyrotropic:
		return 9
	}
	return 0
}

// FromRecord reconstructs a term from a dumped parameter record. The sigma
// map is spatial data owned by the material setup and is supplied by the
// caller; src is only consulted for noisy terms. The restored term keeps the
// recorded identifier, and the process counter is advanced past it so later
// constructions never collide.
func FromRecord(rec []float64, sigma *SigmaMap, src noise.Source) (Susceptibility, error) {
	if len(rec) < 1 {
		return nil, ErrBadRecord
	}
	tag := int(rec[0])
	if n := RecordLen(tag); n == 0 || len(rec) != n {
		return nil, fmt.Errorf("%w: tag %d with %d fields", ErrBadRecord, tag, len(rec))
	}
	id := int(rec[1])

	var s Susceptibility
	switch tag {
	case TagLorentzian:
		l := NewLorentzian(sigma, rec[2], rec[3], rec[4] != 0)
		l.id = id
		s = l
	case TagNoisyLorentzian:
		n := NewNoisyLorentzian(sigma, rec[2], rec[3], rec[4], rec[5] != 0, src)
		n.id = id
		s = n
	case TagGyrotropic:
		g := NewGyrotropic(sigma, [3]float64{rec[2], rec[3], rec[4]}, rec[5], rec[6], rec[7])
		g.NoOmega0Denominator = rec[8] != 0
		g.id = id
		s = g
	}
	EnsureIDFloor(id)
	return s, nil
}
