// Package noise provides the random sources consumed by stochastic
// susceptibility terms. The dispersion core only draws from a [Source];
// generation itself lives here, behind the interface, so deterministic
// sources can be substituted in tests.
package noise

import (
	"math"
	"math/rand"
)

// Source yields independent random increments, one draw per grid point per
// step. Implementations need not be safe for concurrent use; each chunk
// should own its own Source.
type Source interface {
	// Draw returns a random value with the given mean and standard
	// deviation.
	Draw(mean, stddev float64) float64
}

// Gaussian draws normally distributed values. This is the default noise
// model for thermal/quantum forcing.
type Gaussian struct {
	rng *rand.Rand
}

func NewGaussian(seed int64) *Gaussian {
	return &Gaussian{rng: rand.New(rand.NewSource(seed))}
}

func (g *Gaussian) Draw(mean, stddev float64) float64 {
	return mean + stddev*g.rng.NormFloat64()
}

// Uniform draws from [mean - a, mean + a] with a chosen so the variance
// matches a Gaussian of the same stddev (a = stddev * sqrt(3)).
type Uniform struct {
	rng *rand.Rand
}

func NewUniform(seed int64) *Uniform {
	return &Uniform{rng: rand.New(rand.NewSource(seed))}
}

func (u *Uniform) Draw(mean, stddev float64) float64 {
	a := stddev * math.Sqrt(3)
	return mean + a*(2*u.rng.Float64()-1)
}
