package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/seewhydee/meep/internal/grid"
	"github.com/seewhydee/meep/internal/noise"
	"github.com/seewhydee/meep/internal/susceptibility"
)

const (
	DefaultDt     = 0.01
	DefaultSteps  = 1000
	DefaultNx     = 16
	DefaultOmega0 = 1.0
	DefaultGamma  = 0.1
	DefaultSigma  = 1.0
)

// TermConfig describes one dispersive term of the material stack.
type TermConfig struct {
	Type                string             `yaml:"type"` // lorentzian, noisy_lorentzian, gyrotropic
	Omega0              float64            `yaml:"omega0"`
	Gamma               float64            `yaml:"gamma"`
	NoiseAmp            float64            `yaml:"noise_amp"`
	Alpha               float64            `yaml:"alpha"`
	Bias                [3]float64         `yaml:"bias"`
	Sigma               float64            `yaml:"sigma"`
	SigmaDirs           map[string]float64 `yaml:"sigma_dirs"` // off-diagonal couplings, keyed x/y/z
	NoOmega0Denominator bool               `yaml:"no_omega0_denominator"`
}

// DriveConfig describes the uniform source applied to the driven component.
// Frequency zero means a constant drive.
type DriveConfig struct {
	Component string  `yaml:"component"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

// ProbeConfig selects the grid point whose polarization is traced.
type ProbeConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

type Config struct {
	Nx    int          `yaml:"nx"`
	Ny    int          `yaml:"ny"`
	Nz    int          `yaml:"nz"`
	Dt    float64      `yaml:"dt"`
	Steps int          `yaml:"steps"`
	Seed  int64        `yaml:"seed"`
	Drive DriveConfig  `yaml:"drive"`
	Probe ProbeConfig  `yaml:"probe"`
	Terms []TermConfig `yaml:"terms"`
}

func DefaultConfig() *Config {
	return &Config{
		Nx:    DefaultNx,
		Ny:    1,
		Nz:    1,
		Dt:    DefaultDt,
		Steps: DefaultSteps,
		Drive: DriveConfig{Component: "Ex", Amplitude: 1.0},
		Probe: ProbeConfig{X: DefaultNx / 2},
		Terms: []TermConfig{
			{Type: "lorentzian", Omega0: DefaultOmega0, Gamma: DefaultGamma, Sigma: DefaultSigma},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %f", c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("config: steps must be positive, got %d", c.Steps)
	}
	if _, ok := grid.ParseComponent(c.Drive.Component); !ok {
		return fmt.Errorf("config: unknown drive component %q", c.Drive.Component)
	}
	for i, t := range c.Terms {
		switch t.Type {
		case "lorentzian", "noisy_lorentzian", "gyrotropic":
		default:
			return fmt.Errorf("config: term %d: unknown type %q", i, t.Type)
		}
		for key := range t.SigmaDirs {
			if parseDirection(key) == grid.NoDirection {
				return fmt.Errorf("config: term %d: unknown sigma direction %q", i, key)
			}
		}
	}
	return nil
}

// Warnings reports non-fatal parameter diagnostics: term parameters that the
// Lorentzian pole test flags as intrinsically unstable for the chosen dt.
// The test is conservative, so these are surfaced, never enforced.
func (c *Config) Warnings() []string {
	var out []string
	for i, t := range c.Terms {
		if susceptibility.Unstable(t.Omega0, t.Gamma, c.Dt) {
			out = append(out, fmt.Sprintf(
				"term %d (%s): omega0=%g gamma=%g dt=%g has a discretization pole outside the unit circle",
				i, t.Type, t.Omega0, t.Gamma, c.Dt))
		}
	}
	return out
}

func parseDirection(name string) grid.Direction {
	switch name {
	case "x", "X":
		return grid.X
	case "y", "Y":
		return grid.Y
	case "z", "Z":
		return grid.Z
	}
	return grid.NoDirection
}

// BuildSigma assembles the sigma map of one term: the diagonal coupling on
// the driven component over the owned region, plus any configured
// off-diagonal directions.
func (t *TermConfig) BuildSigma(gv *grid.Volume, comp grid.Component) *susceptibility.SigmaMap {
	sigma := susceptibility.NewSigmaMap(gv.NumPoints())
	if t.Sigma != 0 {
		sigma.FillOwned(gv, comp, comp.Direction(), t.Sigma)
	}
	for key, val := range t.SigmaDirs {
		d := parseDirection(key)
		if d == grid.NoDirection || d == comp.Direction() {
			continue
		}
		sigma.FillOwned(gv, comp, d, val)
	}
	return sigma
}

// Build constructs the term over the given chunk geometry. src is only
// consulted for noisy terms.
func (t *TermConfig) Build(gv *grid.Volume, comp grid.Component, src noise.Source) (susceptibility.Susceptibility, error) {
	sigma := t.BuildSigma(gv, comp)
	switch t.Type {
	case "lorentzian":
		return susceptibility.NewLorentzian(sigma, t.Omega0, t.Gamma, t.NoOmega0Denominator), nil
	case "noisy_lorentzian":
		return susceptibility.NewNoisyLorentzian(sigma, t.NoiseAmp, t.Omega0, t.Gamma, t.NoOmega0Denominator, src), nil
	case "gyrotropic":
		// Gyrotropic media couple all three directions; the diagonal
		// sigma covers every component of the driven field.
		sigma = susceptibility.NewSigmaMap(gv.NumPoints())
		if t.Sigma != 0 {
			for d := grid.X; d < grid.NumDirections; d++ {
				sigma.FillOwned(gv, comp.WithDirection(d), d, t.Sigma)
			}
		}
		g := susceptibility.NewGyrotropic(sigma, t.Bias, t.Alpha, t.Omega0, t.Gamma)
		if err := g.CheckVolume(gv); err != nil {
			return nil, err
		}
		return g, nil
	}
	return nil, fmt.Errorf("config: unknown term type %q", t.Type)
}
