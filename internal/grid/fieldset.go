package grid

// FieldSet holds dense per-point arrays for each (component, copy) pair.
// A nil slice means the component has no data on this chunk, which is a
// valid, expected state everywhere in the dispersion core.
type FieldSet struct {
	arr [NumComponents][NumCopies][]float64
}

// NewFieldSet returns an empty set; components are allocated on demand.
func NewFieldSet() *FieldSet { return &FieldSet{} }

// Alloc creates a zeroed array for (c, cmp) sized to the chunk.
func (f *FieldSet) Alloc(v *Volume, c Component, cmp int) {
	f.arr[c][cmp] = make([]float64, v.NumPoints())
}

// Get returns the array for (c, cmp), nil if absent.
func (f *FieldSet) Get(c Component, cmp int) []float64 {
	if c < 0 || c >= NumComponents || cmp < 0 || cmp >= NumCopies {
		return nil
	}
	return f.arr[c][cmp]
}

// Set installs an externally owned array for (c, cmp).
func (f *FieldSet) Set(c Component, cmp int, values []float64) {
	f.arr[c][cmp] = values
}

// Has reports whether (c, cmp) carries data.
func (f *FieldSet) Has(c Component, cmp int) bool { return f.Get(c, cmp) != nil }

// Clone deep-copies every populated array.
func (f *FieldSet) Clone() *FieldSet {
	out := NewFieldSet()
	for c := 0; c < NumComponents; c++ {
		for cmp := 0; cmp < NumCopies; cmp++ {
			if src := f.arr[c][cmp]; src != nil {
				dst := make([]float64, len(src))
				copy(dst, src)
				out.arr[c][cmp] = dst
			}
		}
	}
	return out
}

// CopyValues copies array contents from src for every component populated in
// both sets. Used for the W -> W_prev rotation each step.
func (f *FieldSet) CopyValues(src *FieldSet) {
	for c := 0; c < NumComponents; c++ {
		for cmp := 0; cmp < NumCopies; cmp++ {
			if f.arr[c][cmp] != nil && src.arr[c][cmp] != nil {
				copy(f.arr[c][cmp], src.arr[c][cmp])
			}
		}
	}
}
