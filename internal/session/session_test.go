package session

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/horizon/internal/camera"
	"github.com/san-kum/horizon/internal/config"
	"github.com/san-kum/horizon/internal/lens"
	"github.com/san-kum/horizon/internal/render"
)

func run(sc *Scheduler, n int, each func(i int)) {
	for i := 0; i < n; i++ {
		if each != nil {
			each(i)
		}
		sc.Tick(1.0 / 60)
	}
}

var _ = Describe("Session", func() {
	var cfg *config.Config

	BeforeEach(func() {
		cfg = config.GetPreset("warm")
		cfg.Cols, cfg.Rows = 32, 12
		cfg.Scene.Stars.Count = 200
	})

	Describe("glyph mode", func() {
		It("leaves camera and bodies bit-identical after ON, OFF, ON", func() {
			plain, err := New(cfg)
			Expect(err).NotTo(HaveOccurred())
			toggled, err := New(cfg)
			Expect(err).NotTo(HaveOccurred())

			a, b := NewScheduler(plain), NewScheduler(toggled)
			plain.RequestFlight("projects")
			toggled.RequestFlight("projects")

			run(a, 90, nil)
			run(b, 90, func(i int) {
				switch i {
				case 10:
					toggled.SetGlyphMode(false)
				case 40:
					toggled.SetGlyphMode(true)
				case 60:
					toggled.ToggleGlyphMode()
					toggled.ToggleGlyphMode()
				}
			})

			Expect(toggled.GlyphMode()).To(BeTrue())
			sa, sb := plain.State(), toggled.State()
			Expect(sb.Position).To(Equal(sa.Position))
			Expect(sb.Flight).To(Equal(sa.Flight))
			Expect(sb.Bodies).To(Equal(sa.Bodies))
		})

		It("switches the surface kind only", func() {
			s, err := New(cfg)
			Expect(err).NotTo(HaveOccurred())
			sc := NewScheduler(s)

			f, err := sc.Tick(0.016)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Surface.IsGlyph()).To(BeTrue())

			s.ToggleGlyphMode()
			f, err = sc.Tick(0.016)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Surface.IsGlyph()).To(BeFalse())
			Expect(f.Surface.Raster.Width).To(Equal(64))
		})
	})

	Describe("buffer allocation failure", func() {
		It("skips frames and recovers on a later tick", func() {
			cfg.Lens.Enabled = true
			broken := false
			alloc := func(w, h int) (*render.Raster, error) {
				if broken {
					return nil, errors.New("context lost")
				}
				return render.NewRaster(w, h)
			}
			s, err := New(cfg, WithAllocator(alloc))
			Expect(err).NotTo(HaveOccurred())
			sc := NewScheduler(s)

			broken = true
			Expect(s.Resize(100, 60)).To(MatchError(lens.ErrBufferUnavailable))

			f, err := sc.Tick(0.016)
			Expect(err).To(MatchError(ErrFrameSkipped))
			Expect(f.Skipped).To(BeTrue())
			Expect(f.Surface.Grid).To(BeNil())
			Expect(f.Surface.Raster).To(BeNil())

			broken = false
			f, err = sc.Tick(0.016)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Skipped).To(BeFalse())
			Expect(f.Surface.Grid.Cols).To(Equal(50))
			Expect(sc.Stats().Skipped).To(Equal(1))
		})

		It("keeps the camera moving through skipped frames", func() {
			fail := false
			s, err := New(cfg, WithAllocator(func(w, h int) (*render.Raster, error) {
				if fail {
					return nil, errors.New("no memory")
				}
				return render.NewRaster(w, h)
			}))
			Expect(err).NotTo(HaveOccurred())
			sc := NewScheduler(s)
			s.RequestFlight("about")
			fail = true
			s.Resize(70, 40)
			run(sc, 5, nil)
			Expect(s.State().Flight.Progress).To(BeNumerically("~", 5*camera.DefaultFlightStep, 1e-12))
		})
	})

	Describe("reload", func() {
		It("never touches the camera or the bodies", func() {
			s, err := New(cfg)
			Expect(err).NotTo(HaveOccurred())
			sc := NewScheduler(s)
			s.RequestFlight("about")
			run(sc, 20, nil)
			before := s.State()

			next := config.GetPreset("lensed")
			next.Camera.FlightStep = 0.5
			next.Glyph.CellWidth = 1
			Expect(s.Reload(next)).To(Succeed())
			Expect(s.State()).To(Equal(before))
			Expect(s.Config().Camera.FlightStep).To(Equal(camera.DefaultFlightStep))

			w, h := s.Size()
			Expect(w).To(Equal(32))
			Expect(h).To(Equal(48))

			f, err := sc.Tick(0.016)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.lens).NotTo(BeNil())
			Expect(f.Surface.Grid.Cols).To(Equal(32))
		})

		It("keeps a pixel size that is not a whole number of cells", func() {
			s, err := New(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Resize(801, 601)).To(Succeed())

			Expect(s.Reload(config.GetPreset("lensed"))).To(Succeed())
			w, h := s.Size()
			Expect(w).To(Equal(801))
			Expect(h).To(Equal(601))

			f, err := NewScheduler(s).Tick(0.016)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Surface.Grid.Cols).To(Equal(400))
			Expect(s.lens).NotTo(BeNil())
		})

		It("rejects a disk that does not compile and keeps running", func() {
			s, err := New(cfg)
			Expect(err).NotTo(HaveOccurred())
			bad := config.GetPreset("warm")
			bad.Disk.AlphaFloor = 0
			Expect(s.Reload(bad)).NotTo(Succeed())
			_, err = NewScheduler(s).Tick(0.016)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("presets", func() {
		It("leaves the empty sky blank in every glyph preset", func() {
			for _, name := range config.ListPresets() {
				pc := config.GetPreset(name)
				pc.Cols, pc.Rows = 40, 15
				pc.Scene.Stars.Count = 200
				s, err := New(pc)
				Expect(err).NotTo(HaveOccurred())

				f, err := NewScheduler(s).Tick(0.016)
				Expect(err).NotTo(HaveOccurred())
				g := f.Surface.Grid
				Expect(g).NotTo(BeNil(), name)

				blank, dense := 0, 0
				for _, c := range g.Cells {
					switch c {
					case ' ':
						blank++
					case '@':
						dense++
					}
				}
				Expect(blank).To(BeNumerically(">", len(g.Cells)/2), name)
				Expect(dense).To(BeNumerically("<", blank), name)
			}
		})
	})
})
