package config

// Presets are ready-made material stacks keyed by name.
var Presets = map[string]*Config{
	"decay": {
		Nx: 16, Ny: 1, Nz: 1, Dt: 0.01, Steps: 2000,
		Drive: DriveConfig{Component: "Ex", Amplitude: 0},
		Probe: ProbeConfig{X: 8},
		Terms: []TermConfig{
			{Type: "lorentzian", Omega0: 1.0, Gamma: 0.1, Sigma: 1.0},
		},
	},
	"driven": {
		Nx: 16, Ny: 1, Nz: 1, Dt: 0.01, Steps: 4000,
		Drive: DriveConfig{Component: "Ex", Amplitude: 1.0, Frequency: 0.8},
		Probe: ProbeConfig{X: 8},
		Terms: []TermConfig{
			{Type: "lorentzian", Omega0: 1.0, Gamma: 0.05, Sigma: 1.0},
		},
	},
	"thermal": {
		Nx: 16, Ny: 1, Nz: 1, Dt: 0.01, Steps: 4000, Seed: 1,
		Drive: DriveConfig{Component: "Ex", Amplitude: 0},
		Probe: ProbeConfig{X: 8},
		Terms: []TermConfig{
			{Type: "noisy_lorentzian", Omega0: 1.0, Gamma: 0.1, NoiseAmp: 0.1, Sigma: 1.0},
		},
	},
	"faraday": {
		Nx: 8, Ny: 8, Nz: 8, Dt: 0.01, Steps: 2000,
		Drive: DriveConfig{Component: "Ex", Amplitude: 1.0, Frequency: 0.5},
		Probe: ProbeConfig{X: 4, Y: 4, Z: 4},
		Terms: []TermConfig{
			{Type: "gyrotropic", Omega0: 1.0, Gamma: 0.1, Alpha: 0.2,
				Bias: [3]float64{0, 0, 1}, Sigma: 1.0},
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
