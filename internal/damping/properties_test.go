package damping_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/mergersrc/internal/damping"
	"github.com/san-kum/mergersrc/internal/dynamo"
	"github.com/san-kum/mergersrc/internal/rotation"
)

var _ = Describe("Kernel", func() {
	var (
		cfg   damping.Config
		cells []damping.Cell
	)

	BeforeEach(func() {
		cfg = damping.Config{
			Problem:                 damping.ProblemMerger,
			RelaxationDampingFactor: 0.2,
			RadialDampingFactor:     5,
			TffPrimary:              3,
			TffSecondary:            8,
			Center:                  r3.Vec{X: 0.5, Y: -0.25},
			Axes:                    damping.DefaultAxes,
		}
		cells = []damping.Cell{
			{Density: 1, Momentum: r3.Vec{X: 2, Y: 0.5, Z: -1}, Position: r3.Vec{X: 3, Y: 4, Z: 1}},
			{Density: 0.01, Momentum: r3.Vec{X: -0.3, Y: 0.02, Z: 0.1}, Position: r3.Vec{X: -2, Y: 1, Z: -3}},
			{Density: 40, Momentum: r3.Vec{X: 0, Y: 90, Z: 0}, Position: r3.Vec{X: 1, Y: -7, Z: 0}},
		}
	})

	Describe("radial drift", func() {
		DescribeTable("never pushes along the axis orthogonal to the orbital plane",
			func(axes [3]int, rotating bool) {
				cfg.Axes = axes
				if rotating {
					cfg.Rotation = rotation.Frame{Axis: axes[2] - 1, Period: 4}
					cfg.StateInRotatingFrame = true
				}
				k, err := damping.NewKernel(cfg)
				Expect(err).NotTo(HaveOccurred())

				for _, c := range cells {
					term, ok := k.RadialDrift(c, 0.3, 1.5)
					Expect(ok).To(BeTrue())
					Expect(dynamo.Component(term.Momentum, axes[2]-1)).To(Equal(0.0))
				}
			},
			Entry("x-y plane", [3]int{1, 2, 3}, false),
			Entry("y-z plane", [3]int{2, 3, 1}, false),
			Entry("z-x plane, rotating", [3]int{3, 1, 2}, true),
		)

		It("points inward whatever the direction of radial motion", func() {
			k, err := damping.NewKernel(cfg)
			Expect(err).NotTo(HaveOccurred())

			for _, c := range cells {
				loc := r3.Sub(c.Position, cfg.Center)
				rhat := r3.Unit(r3.Vec{X: loc.X, Y: loc.Y})

				term, _ := k.RadialDrift(c, 0.1, 0)
				Expect(r3.Dot(term.Momentum, rhat)).To(BeNumerically("<=", 0))
			}
		})
	})

	Describe("relaxation", func() {
		It("opposes the momentum in a non-rotating problem", func() {
			k, err := damping.NewKernel(cfg)
			Expect(err).NotTo(HaveOccurred())

			for _, c := range cells {
				term, ok := k.Relaxation(c, 0.1, 0)
				Expect(ok).To(BeTrue())
				Expect(r3.Dot(term.Momentum, c.Momentum)).To(BeNumerically("<", 0))
				Expect(term.Energy).To(BeNumerically("<", 0))
			}
		})

		It("removes less than the full momentum in one step however large dt is", func() {
			k, err := damping.NewKernel(cfg)
			Expect(err).NotTo(HaveOccurred())

			for _, dt := range []float64{1e-3, 1, 1e3, 1e9} {
				term, _ := k.Relaxation(cells[0], dt, 0)
				removed := r3.Norm(r3.Scale(dt, term.Momentum))
				Expect(removed).To(BeNumerically("<", r3.Norm(cells[0].Momentum)))
			}
		})
	})

	Describe("energy bookkeeping", func() {
		It("matches v . S exactly for every term and frame choice", func() {
			for _, rotating := range []bool{false, true} {
				cfg.StateInRotatingFrame = rotating
				cfg.Rotation = rotation.Frame{Axis: 2, Period: 11, PeriodDot: 0.01}
				cfg.HybridMomentum = true
				k, err := damping.NewKernel(cfg)
				Expect(err).NotTo(HaveOccurred())

				for _, c := range cells {
					vel := r3.Scale(1/c.Density, c.Momentum)
					total := k.Evaluate(c, 0.25, 3)

					relax, _ := k.Relaxation(c, 0.25, 3)
					drift, _ := k.RadialDrift(c, 0.25, 3)
					Expect(relax.Energy).To(Equal(r3.Dot(vel, relax.Momentum)))
					Expect(drift.Energy).To(Equal(r3.Dot(vel, drift.Momentum)))
					Expect(total.Energy).To(BeNumerically("~", relax.Energy+drift.Energy, 1e-12))
				}
			}
		})
	})

	Describe("disabled configurations", func() {
		DescribeTable("contribute nothing",
			func(mutate func(*damping.Config)) {
				mutate(&cfg)
				k, err := damping.NewKernel(cfg)
				Expect(err).NotTo(HaveOccurred())
				for _, c := range cells {
					Expect(k.Evaluate(c, 0.5, 0)).To(Equal(damping.Term{}))
				}
			},
			Entry("both factors zero", func(c *damping.Config) {
				c.RelaxationDampingFactor, c.RadialDampingFactor = 0, 0
			}),
			Entry("both factors negative", func(c *damping.Config) {
				c.RelaxationDampingFactor, c.RadialDampingFactor = -1, -math.SmallestNonzeroFloat64
			}),
			Entry("different problem", func(c *damping.Config) { c.Problem = 0 }),
		)
	})
})
