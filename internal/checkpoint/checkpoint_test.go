package checkpoint_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/seewhydee/meep/internal/checkpoint"
	"github.com/seewhydee/meep/internal/grid"
	"github.com/seewhydee/meep/internal/noise"
	"github.com/seewhydee/meep/internal/susceptibility"
)

func fullSigma(ntot int) *susceptibility.SigmaMap {
	m := susceptibility.NewSigmaMap(ntot)
	for _, c := range []grid.Component{grid.Ex, grid.Ey, grid.Ez} {
		m.Fill(c, c.Direction(), 1.0)
	}
	return m
}

var _ = Describe("Stream", func() {
	It("tracks the running offset across chunked writes", func() {
		s := checkpoint.NewStream()
		s.WriteChunk([]float64{1, 2, 3})
		s.WriteChunk([]float64{4})
		Expect(s.Offset()).To(Equal(4))
		Expect(s.Data()).To(Equal([]float64{1, 2, 3, 4}))
	})
})

var _ = Describe("Dump and Restore", func() {
	var (
		terms  []susceptibility.Susceptibility
		sigmas map[int]*susceptibility.SigmaMap
	)

	BeforeEach(func() {
		l := susceptibility.NewLorentzian(fullSigma(1), 1.2, 0.15, false)
		n := susceptibility.NewNoisyLorentzian(fullSigma(1), 0.4, 0.9, 0.05, true, noise.NewGaussian(11))
		g := susceptibility.NewGyrotropic(fullSigma(1), [3]float64{0, 0, 1}, 0.3, 1.1, 0.2)
		terms = []susceptibility.Susceptibility{l, n, g}
		sigmas = map[int]*susceptibility.SigmaMap{
			l.ID(): l.Sigma().Clone(),
			n.ID(): n.Sigma().Clone(),
			g.ID(): g.Sigma().Clone(),
		}
	})

	It("round-trips term types, identifiers and parameters", func() {
		s := checkpoint.Dump(terms)
		restored, err := checkpoint.Restore(s.Data(),
			func(id int) *susceptibility.SigmaMap { return sigmas[id] },
			noise.NewGaussian(11))
		Expect(err).NotTo(HaveOccurred())
		Expect(restored).To(HaveLen(3))

		for i := range terms {
			Expect(restored[i].ID()).To(Equal(terms[i].ID()))
		}
		rl, ok := restored[0].(*susceptibility.Lorentzian)
		Expect(ok).To(BeTrue())
		Expect(rl.Omega0).To(Equal(1.2))
		Expect(rl.Gamma).To(Equal(0.15))

		rn, ok := restored[1].(*susceptibility.NoisyLorentzian)
		Expect(ok).To(BeTrue())
		Expect(rn.NoiseAmp).To(Equal(0.4))
		Expect(rn.NoOmega0Denominator).To(BeTrue())

		rg, ok := restored[2].(*susceptibility.Gyrotropic)
		Expect(ok).To(BeTrue())
		Expect(rg.Alpha).To(Equal(0.3))
		Expect(rg.Bias()).To(Equal([3]float64{0, 0, 1}))
	})

	It("restores terms that update bit-identically to the originals", func() {
		s := checkpoint.Dump(terms)
		restored, err := checkpoint.Restore(s.Data(),
			func(id int) *susceptibility.SigmaMap { return sigmas[id] },
			noise.NewGaussian(11))
		Expect(err).NotTo(HaveOccurred())

		run := func(set []susceptibility.Susceptibility) []float64 {
			gv := grid.NewVolume(1, 1, 1)
			fields := grid.NewFieldSet()
			for _, c := range []grid.Component{grid.Ex, grid.Ey, grid.Ez} {
				fields.Alloc(gv, c, 0)
				fields.Get(c, 0)[0] = 0.5
			}
			out := make([]float64, 0, len(set))
			for _, term := range set {
				st := term.NewInternalData(fields, gv)
				term.InitInternalData(fields, 0.01, gv, st)
				for i := 0; i < 25; i++ {
					term.UpdateP(fields, nil, 0.01, gv, st)
				}
				out = append(out, st.P(grid.Ex, 0)[0], st.P(grid.Ey, 0)[0], st.P(grid.Ez, 0)[0])
			}
			return out
		}

		Expect(run(restored)).To(Equal(run(terms)))
	})

	It("rejects streams with unknown tags", func() {
		_, err := checkpoint.Restore([]float64{99, 1, 2, 3},
			func(int) *susceptibility.SigmaMap { return fullSigma(1) }, nil)
		Expect(err).To(MatchError(ContainSubstring("bad record")))
	})

	It("rejects truncated streams", func() {
		s := checkpoint.Dump(terms[:1])
		truncated := s.Data()[:len(s.Data())-1]
		_, err := checkpoint.Restore(truncated,
			func(int) *susceptibility.SigmaMap { return fullSigma(1) }, nil)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Save and Load", func() {
	It("persists the stream unchanged", func() {
		l := susceptibility.NewLorentzian(fullSigma(1), 1.0, 0.1, false)
		s := checkpoint.Dump([]susceptibility.Susceptibility{l})

		path := filepath.Join(GinkgoT().TempDir(), "terms.json")
		Expect(checkpoint.Save(path, s)).To(Succeed())

		loaded, err := checkpoint.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Data()).To(Equal(s.Data()))
		Expect(loaded.Offset()).To(Equal(len(s.Data())))
	})

	It("fails on a missing file", func() {
		_, err := checkpoint.Load(filepath.Join(GinkgoT().TempDir(), "absent.json"))
		Expect(err).To(HaveOccurred())
	})
})
