package main

import (
	"fmt"
	"math"
	"math/cmplx"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/seewhydee/meep/internal/analysis"
	"github.com/seewhydee/meep/internal/checkpoint"
	"github.com/seewhydee/meep/internal/config"
	"github.com/seewhydee/meep/internal/export"
	"github.com/seewhydee/meep/internal/grid"
	"github.com/seewhydee/meep/internal/noise"
	"github.com/seewhydee/meep/internal/solver"
	"github.com/seewhydee/meep/internal/store"
	"github.com/seewhydee/meep/internal/susceptibility"
	"github.com/seewhydee/meep/internal/viz"
)

var (
	dataDir        string
	configFile     string
	preset         string
	dt             float64
	steps          int
	nx, ny, nz     int
	termType       string
	omega0         float64
	gamma          float64
	sigmaAmp       float64
	noiseAmp       float64
	alpha          float64
	biasX          float64
	biasY          float64
	biasZ          float64
	driveComp      string
	driveAmp       float64
	driveFreq      float64
	seed           int64
	checkpointPath string
	svgWidth       int
	svgHeight      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dispersim",
		Short: "dispersive-material polarization lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dispersim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a dispersion simulation",
		RunE:  runSimulation,
	}
	addSetupFlags(runCmd)
	runCmd.Flags().StringVar(&checkpointPath, "checkpoint", "", "write term parameters to this file after the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live view of the probe polarization",
		RunE:  runLive,
	}
	addSetupFlags(liveCmd)

	stabilityCmd := &cobra.Command{
		Use:   "stability",
		Short: "evaluate the Lorentzian pole diagnostic",
		RunE:  runStability,
	}
	stabilityCmd.Flags().Float64Var(&omega0, "omega0", 1.0, "resonance frequency")
	stabilityCmd.Flags().Float64Var(&gamma, "gamma", 0.1, "damping")
	stabilityCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	spectrumCmd := &cobra.Command{
		Use:   "spectrum <run-id>",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  runSpectrum,
	}

	exportCmd := &cobra.Command{
		Use:   "export <run-id> <output.svg>",
		Short: "render a stored run as an SVG plot",
		Args:  cobra.ExactArgs(2),
		RunE:  runExport,
	}
	exportCmd.Flags().IntVar(&svgWidth, "width", 800, "plot width in pixels")
	exportCmd.Flags().IntVar(&svgHeight, "height", 300, "plot height in pixels")

	rootCmd.AddCommand(runCmd, liveCmd, stabilityCmd, listCmd, presetsCmd, spectrumCmd, exportCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addSetupFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().IntVar(&nx, "nx", config.DefaultNx, "grid points in x")
	cmd.Flags().IntVar(&ny, "ny", 1, "grid points in y")
	cmd.Flags().IntVar(&nz, "nz", 1, "grid points in z")
	cmd.Flags().StringVar(&termType, "model", "lorentzian", "term type (lorentzian, noisy_lorentzian, gyrotropic)")
	cmd.Flags().Float64Var(&omega0, "omega0", config.DefaultOmega0, "resonance frequency")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "damping")
	cmd.Flags().Float64Var(&sigmaAmp, "sigma", config.DefaultSigma, "coupling strength")
	cmd.Flags().Float64Var(&noiseAmp, "noise-amp", 0, "noise amplitude (noisy_lorentzian)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0, "precession rate (gyrotropic)")
	cmd.Flags().Float64Var(&biasX, "bias-x", 0, "bias vector x (gyrotropic)")
	cmd.Flags().Float64Var(&biasY, "bias-y", 0, "bias vector y (gyrotropic)")
	cmd.Flags().Float64Var(&biasZ, "bias-z", 1, "bias vector z (gyrotropic)")
	cmd.Flags().StringVar(&driveComp, "component", "Ex", "driven field component")
	cmd.Flags().Float64Var(&driveAmp, "drive", 1.0, "drive amplitude")
	cmd.Flags().Float64Var(&driveFreq, "freq", 0, "drive frequency (0 = constant)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
}

func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		return cfg, nil
	}

	cfg := config.DefaultConfig()
	cfg.Nx, cfg.Ny, cfg.Nz = nx, ny, nz
	cfg.Dt = dt
	cfg.Steps = steps
	cfg.Seed = seed
	cfg.Drive = config.DriveConfig{Component: driveComp, Amplitude: driveAmp, Frequency: driveFreq}
	cfg.Probe = config.ProbeConfig{X: nx / 2, Y: ny / 2, Z: nz / 2}
	cfg.Terms = []config.TermConfig{{
		Type:     termType,
		Omega0:   omega0,
		Gamma:    gamma,
		NoiseAmp: noiseAmp,
		Alpha:    alpha,
		Bias:     [3]float64{biasX, biasY, biasZ},
		Sigma:    sigmaAmp,
	}}
	return cfg, nil
}

// buildChunk assembles the chunk, fields, and terms a config describes.
func buildChunk(cfg *config.Config) (*solver.Chunk, grid.Component, int, error) {
	if err := cfg.Validate(); err != nil {
		return nil, 0, 0, err
	}
	for _, warn := range cfg.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warn)
	}

	gv := grid.NewVolume(cfg.Nx, cfg.Ny, cfg.Nz)
	comp, _ := grid.ParseComponent(cfg.Drive.Component)
	ch := solver.NewChunk(gv, cfg.Dt)

	// Off-diagonal and gyrotropic coupling reads the other two directions
	// of the driven field, so those components need data too.
	coupled := false
	for _, t := range cfg.Terms {
		if t.Type == "gyrotropic" || len(t.SigmaDirs) > 0 {
			coupled = true
		}
	}
	ch.AllocField(comp, 0)
	if coupled {
		for d := grid.X; d < grid.NumDirections; d++ {
			if d != comp.Direction() {
				ch.AllocField(comp.WithDirection(d), 0)
			}
		}
	}

	src := noise.NewGaussian(cfg.Seed)
	for _, tc := range cfg.Terms {
		term, err := tc.Build(gv, comp, src)
		if err != nil {
			return nil, 0, 0, err
		}
		if _, err := ch.AddTerm(term); err != nil {
			return nil, 0, 0, err
		}
	}

	amp, freq := cfg.Drive.Amplitude, cfg.Drive.Frequency
	ch.SetDrive(comp, func(t float64) float64 {
		if freq == 0 {
			return amp
		}
		return amp * math.Cos(2*math.Pi*freq*t)
	})

	probeIdx := gv.Index(cfg.Probe.X, cfg.Probe.Y, cfg.Probe.Z)
	return ch, comp, probeIdx, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ch, comp, probeIdx, err := buildChunk(cfg)
	if err != nil {
		return err
	}

	times := make([]float64, 0, cfg.Steps)
	pTrace := make([]float64, 0, cfg.Steps)
	wTrace := make([]float64, 0, cfg.Steps)
	for i := 0; i < cfg.Steps; i++ {
		ch.Step()
		times = append(times, ch.Time())
		pTrace = append(pTrace, ch.TotalP(comp, 0, probeIdx))
		wTrace = append(wTrace, ch.Fields().Get(comp, 0)[probeIdx])
	}

	fmt.Println(asciigraph.Plot(downsample(pTrace, 120),
		asciigraph.Height(12),
		asciigraph.Caption(fmt.Sprintf("P(%s) at probe", comp))))

	fm := ch.FieldMinusP(comp.FieldType())
	fluxComp := grid.TypeComponent(grid.FluxType(comp.FieldType()), comp.Direction())
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "steps\t%d\n", ch.Steps())
	fmt.Fprintf(w, "final P\t%+.8f\n", pTrace[len(pTrace)-1])
	fmt.Fprintf(w, "final W\t%+.8f\n", wTrace[len(wTrace)-1])
	if f := fm.Get(fluxComp, 0); f != nil {
		fmt.Fprintf(w, "final W-P\t%+.8f\n", f[probeIdx])
	}
	for _, term := range ch.Terms() {
		fmt.Fprintf(w, "term %d ghosts(%s)\t%d\n", term.Sus.ID(), comp, term.Sus.NumNotownedNeeded(comp, term.State))
	}
	w.Flush()

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := store.RunMetadata{
		Preset:    preset,
		Seed:      cfg.Seed,
		Dt:        cfg.Dt,
		Steps:     cfg.Steps,
		Component: comp.String(),
	}
	for _, term := range ch.Terms() {
		meta.TermIDs = append(meta.TermIDs, term.Sus.ID())
	}
	for _, tc := range cfg.Terms {
		meta.TermTypes = append(meta.TermTypes, tc.Type)
	}
	runID, err := st.Save(meta, times, []store.Trace{
		{Name: "P", Values: pTrace},
		{Name: "W", Values: wTrace},
	})
	if err != nil {
		return err
	}
	fmt.Printf("saved %s\n", runID)

	if checkpointPath != "" {
		stream := checkpoint.NewStream()
		for _, term := range ch.Terms() {
			term.Sus.DumpParams(stream)
		}
		if err := checkpoint.Save(checkpointPath, stream); err != nil {
			return err
		}
		fmt.Printf("checkpoint written to %s (%d values)\n", checkpointPath, stream.Offset())
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ch, comp, probeIdx, err := buildChunk(cfg)
	if err != nil {
		return err
	}
	return viz.RunLive(ch, comp, probeIdx)
}

func runStability(cmd *cobra.Command, args []string) error {
	if solverErr := solver.ValidateDt(dt); solverErr != nil {
		return solverErr
	}
	if susceptibility.Unstable(omega0, gamma, dt) {
		fmt.Printf("omega0=%g gamma=%g dt=%g: UNSTABLE (pole outside unit circle)\n", omega0, gamma, dt)
	} else {
		fmt.Printf("omega0=%g gamma=%g dt=%g: stable\n", omega0, gamma, dt)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tCOMPONENT\tTERMS\tSTEPS\tDT")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%d\t%g\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Component, r.TermTypes, r.Steps, r.Dt)
	}
	return w.Flush()
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	times, traces, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(times) < 2 {
		return fmt.Errorf("run %s has too few samples", args[0])
	}
	sampleDt := times[1] - times[0]

	var pTrace, wTrace []float64
	for _, tr := range traces {
		switch tr.Name {
		case "P":
			pTrace = tr.Values
		case "W":
			wTrace = tr.Values
		}
	}
	if pTrace == nil {
		return fmt.Errorf("run %s has no polarization trace", args[0])
	}

	ps := analysis.PowerSpectrum(pTrace)
	freqs := analysis.Frequencies(len(pTrace), sampleDt)
	peak := analysis.PeakBin(ps)

	fmt.Println(asciigraph.Plot(downsample(ps, 120),
		asciigraph.Height(12),
		asciigraph.Caption("|P(f)|")))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "samples\t%d\n", len(pTrace))
	if len(freqs) > 1 {
		fmt.Fprintf(w, "resolution\t%g\n", freqs[1])
	}
	fmt.Fprintf(w, "peak frequency\t%g\n", freqs[peak])
	fmt.Fprintf(w, "peak amplitude\t%g\n", ps[peak])
	if wTrace != nil {
		h := analysis.Response(wTrace, pTrace)
		if peak < len(h) && h[peak] != 0 {
			fmt.Fprintf(w, "response |P/W| at peak\t%g\n", cmplx.Abs(h[peak]))
		}
	}
	return w.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	times, traces, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if err := export.WriteSVG(args[1], times, traces, svgWidth, svgHeight); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[1])
	return nil
}

func downsample(data []float64, max int) []float64 {
	if len(data) <= max {
		return data
	}
	out := make([]float64, max)
	for i := range out {
		out[i] = data[i*len(data)/max]
	}
	return out
}
