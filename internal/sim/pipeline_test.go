package sim_test

import (
	"context"
	"image/color"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynadraw/internal/dynamo"
	"github.com/san-kum/dynadraw/internal/render"
	"github.com/san-kum/dynadraw/internal/sim"
)

var _ = Describe("Frame pipeline", func() {
	var (
		canvas *render.Canvas
		s      *sim.Simulator
		bg     = color.RGBA{R: 0x00, G: 0x19, B: 0x3c, A: 0xff}
		pink   = color.RGBA{R: 0xff, G: 0x62, B: 0x8c, A: 0xff}
	)

	BeforeEach(func() {
		canvas = render.NewCanvas(200, 200, bg)
		s = sim.New(canvas, sim.WithBackground(bg), sim.WithColor(pink))
	})

	AfterEach(func() {
		Expect(canvas.Close()).To(Succeed())
	})

	Context("with the pointer held still", func() {
		It("settles the pen on the pointer", func() {
			target := dynamo.V(150, 40)
			s.Push(sim.PointerMoved{At: target})
			Expect(s.Run(context.Background(), 2000)).To(Succeed())

			pen := s.State().Pen
			Expect(pen.Position.X).To(BeNumerically("~", target.X, 1e-6))
			Expect(pen.Position.Y).To(BeNumerically("~", target.Y, 1e-6))
			Expect(pen.Speed()).To(BeNumerically("<", 1e-6))
		})
	})

	Context("without the draw trigger", func() {
		It("leaves the raster untouched however the pen moves", func() {
			before := canvas.Image()
			for _, p := range []dynamo.Vec2{{X: 10, Y: 10}, {X: 190, Y: 20}, {X: 30, Y: 170}} {
				s.Push(sim.PointerMoved{At: p})
				Expect(s.Run(context.Background(), 40)).To(Succeed())
			}
			Expect(canvas.Image()).To(Equal(before))
		})
	})

	Context("while drawing", func() {
		It("paints with the selected color and keeps painting until release", func() {
			rec := sim.NewRecorder()
			s.AddObserver(rec)

			s.Push(sim.PointerPressed{At: dynamo.V(100, 100)}, sim.PointerMoved{At: dynamo.V(160, 100)})
			Expect(s.Run(context.Background(), 20)).To(Succeed())
			Expect(rec.Len()).To(Equal(20))

			for _, seg := range rec.Segments() {
				Expect(seg.Color).To(Equal(pink))
				Expect(seg.Thickness).To(BeNumerically(">=", dynamo.MinThickness))
			}

			s.Push(sim.PointerReleased{At: dynamo.V(160, 100)})
			Expect(s.Run(context.Background(), 20)).To(Succeed())
			Expect(rec.Len()).To(Equal(20))
		})

		It("wipes the raster on clear", func() {
			clean := canvas.Image()
			s.Push(sim.PointerPressed{At: dynamo.V(20, 180)})
			Expect(s.Run(context.Background(), 10)).To(Succeed())
			Expect(canvas.Image()).NotTo(Equal(clean))

			s.Push(sim.PointerReleased{At: dynamo.V(20, 180)}, sim.Cleared{})
			_, err := s.Frame()
			Expect(err).NotTo(HaveOccurred())
			Expect(canvas.Image()).To(Equal(clean))
		})
	})

	Context("with tuning events", func() {
		It("clamps out-of-range values instead of failing", func() {
			s.Push(sim.StiffnessSet{Value: 5}, sim.DampingSet{Value: 2})
			f, err := s.Frame()
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Params.Stiffness).To(Equal(0.2))
			Expect(f.Params.Damping).To(Equal(0.999))
		})
	})
})
