// Package solver provides the minimal chunk/field harness that drives the
// dispersion core: it owns the driving field arrays and the per-chunk term
// states, advances every active term each step, and forms the
// field-minus-polarization quantity the main update equation consumes.
//
// The full field solver, ghost exchange, and domain decomposition live
// outside this module; this harness exposes only their data-need surface.
package solver

import (
	"fmt"
	"sync"

	"github.com/seewhydee/meep/internal/grid"
	"github.com/seewhydee/meep/internal/susceptibility"
)

// Term pairs a susceptibility with its per-chunk internal state.
type Term struct {
	Sus   susceptibility.Susceptibility
	State *susceptibility.PolarizationState
}

// Drive produces the driving field value at time t for one component.
type Drive func(t float64) float64

// Chunk is one spatial subdomain: geometry, driving fields, flux fields,
// and the ordered dispersive terms acting on it. Terms superpose
// additively; insertion order is kept for reproducible checkpoint layout.
type Chunk struct {
	gv     *grid.Volume
	w      *grid.FieldSet
	wPrev  *grid.FieldSet
	flux   *grid.FieldSet
	terms  []*Term
	dt     float64
	t      float64
	steps  int
	drives map[grid.Component]Drive
}

// NewChunk builds a chunk over gv stepping at dt.
func NewChunk(gv *grid.Volume, dt float64) *Chunk {
	return &Chunk{
		gv:     gv,
		w:      grid.NewFieldSet(),
		wPrev:  grid.NewFieldSet(),
		flux:   grid.NewFieldSet(),
		dt:     dt,
		drives: make(map[grid.Component]Drive),
	}
}

func (c *Chunk) Volume() *grid.Volume { return c.gv }
func (c *Chunk) Fields() *grid.FieldSet { return c.w }
func (c *Chunk) Time() float64        { return c.t }
func (c *Chunk) Steps() int           { return c.steps }
func (c *Chunk) Terms() []*Term       { return c.terms }

// AllocField allocates the driving field for (comp, cmp) together with its
// previous-step copy and the paired flux array.
func (c *Chunk) AllocField(comp grid.Component, cmp int) {
	c.w.Alloc(c.gv, comp, cmp)
	c.wPrev.Alloc(c.gv, comp, cmp)
	fluxComp := grid.TypeComponent(grid.FluxType(comp.FieldType()), comp.Direction())
	if !c.flux.Has(fluxComp, cmp) {
		c.flux.Alloc(c.gv, fluxComp, cmp)
	}
}

// SetDrive installs a time-dependent uniform source on one component.
func (c *Chunk) SetDrive(comp grid.Component, fn Drive) {
	c.drives[comp] = fn
}

// AddTerm appends a dispersive term, allocating and initializing its
// internal state from the fields currently present. Geometry-incompatible
// terms are rejected here, before any stepping.
func (c *Chunk) AddTerm(s susceptibility.Susceptibility) (*Term, error) {
	if g, ok := s.(*susceptibility.Gyrotropic); ok {
		if err := g.CheckVolume(c.gv); err != nil {
			return nil, err
		}
	}
	st := s.NewInternalData(c.w, c.gv)
	s.InitInternalData(c.w, c.dt, c.gv, st)
	term := &Term{Sus: s, State: st}
	c.terms = append(c.terms, term)
	return term, nil
}

// Step advances the chunk by one time step: rotate W into W_prev, apply the
// drives, update every term's polarization, and refresh the flux arrays.
func (c *Chunk) Step() {
	c.wPrev.CopyValues(c.w)

	for comp, fn := range c.drives {
		val := fn(c.t)
		for cmp := 0; cmp < grid.NumCopies; cmp++ {
			if arr := c.w.Get(comp, cmp); arr != nil {
				for i := range arr {
					arr[i] = val
				}
			}
		}
	}

	for _, term := range c.terms {
		term.Sus.UpdateP(c.w, c.wPrev, c.dt, c.gv, term.State)
	}

	// In this harness the flux field is the driving field itself; the
	// interesting quantity is what SubtractP leaves of it.
	for comp := grid.Component(0); comp < grid.NumComponents; comp++ {
		for cmp := 0; cmp < grid.NumCopies; cmp++ {
			src := c.w.Get(comp, cmp)
			if src == nil {
				continue
			}
			fluxComp := grid.TypeComponent(grid.FluxType(comp.FieldType()), comp.Direction())
			if dst := c.flux.Get(fluxComp, cmp); dst != nil {
				copy(dst, src)
			}
		}
	}

	c.t += c.dt
	c.steps++
}

// FieldMinusP returns a copy of the flux arrays with every term's
// polarization subtracted, the "field minus polarization" quantity of the
// main update equation. The chunk's own arrays are left untouched.
func (c *Chunk) FieldMinusP(ft grid.FieldType) *grid.FieldSet {
	fm := c.flux.Clone()
	for _, term := range c.terms {
		term.Sus.SubtractP(ft, fm, term.State)
	}
	return fm
}

// TotalP sums the polarization of every term at one point.
func (c *Chunk) TotalP(comp grid.Component, cmp, i int) float64 {
	sum := 0.0
	for _, term := range c.terms {
		if p := term.State.P(comp, cmp); p != nil {
			sum += p[i]
		}
	}
	return sum
}

// NotownedNeeds reports how many ghost polarization values of comp the
// exchange layer must carry across this chunk's boundary.
func (c *Chunk) NotownedNeeds(comp grid.Component) int {
	n := 0
	for _, term := range c.terms {
		n += term.Sus.NumNotownedNeeded(comp, term.State)
	}
	return n
}

// NeedsWNotowned reports whether any term reads ghost values of comp.
func (c *Chunk) NeedsWNotowned(comp grid.Component) bool {
	for _, term := range c.terms {
		if term.Sus.NeedsWNotowned(comp, c.w) {
			return true
		}
	}
	return false
}

// Clone deep-copies the chunk: fields, term templates, and internal states.
// Used for symmetry reduction.
func (c *Chunk) Clone() *Chunk {
	out := &Chunk{
		gv:     c.gv,
		w:      c.w.Clone(),
		wPrev:  c.wPrev.Clone(),
		flux:   c.flux.Clone(),
		dt:     c.dt,
		t:      c.t,
		steps:  c.steps,
		drives: c.drives,
	}
	for _, term := range c.terms {
		sus := term.Sus.Clone()
		out.terms = append(out.terms, &Term{
			Sus:   sus,
			State: sus.CopyInternalData(term.State),
		})
	}
	return out
}

// StepAll advances independent chunks in parallel. Chunks share no mutable
// state, so one goroutine per chunk is safe.
func StepAll(chunks []*Chunk, steps int) {
	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for _, ch := range chunks {
		go func(ch *Chunk) {
			defer wg.Done()
			for i := 0; i < steps; i++ {
				ch.Step()
			}
		}(ch)
	}
	wg.Wait()
}

// ValidateDt rejects non-positive time steps.
func ValidateDt(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("solver: dt must be positive, got %f", dt)
	}
	return nil
}
