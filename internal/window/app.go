// Package window hosts a session in a desktop window. Raw frames are uploaded
// as a texture and stretched to fill the window; glyph frames are drawn as
// text in the theme colors.
package window

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/horizon/internal/camera"
	"github.com/san-kum/horizon/internal/glyph"
	"github.com/san-kum/horizon/internal/record"
	"github.com/san-kum/horizon/internal/render"
	"github.com/san-kum/horizon/internal/session"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720

	// on-screen size of one glyph cell
	cellW    = 8
	cellH    = 16
	fontSize = 16
	hudH     = 28

	dragScale = 1.0
)

const fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColRec     = rl.NewColor(255, 68, 68, 255)
)

type Options struct {
	Width, Height int
	FPS           int
	Title         string
	Store         *record.Store
}

// App owns the window, the session texture and the input state.
type App struct {
	sched *session.Scheduler
	store *record.Store
	fps   int
	font  rl.Font

	tex    rl.Texture2D
	texW   int
	texH   int
	pixels []color.RGBA

	frame     session.Frame
	gif       *record.GIF
	recording bool
	status    string
	showHUD   bool
}

func initWindow(o Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(o.Width), int32(o.Height), o.Title)
	rl.SetTargetFPS(int32(o.FPS))
	rl.SetExitKey(0)
}

// loadFont prefers Liberation Mono and falls back to the built-in font.
func loadFont() rl.Font {
	font := rl.LoadFontEx(fontPath, fontSize*2, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// Run opens the window and blocks until it is closed.
func Run(sched *session.Scheduler, o Options) error {
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = defaultWidth, defaultHeight
	}
	if o.FPS <= 0 {
		o.FPS = 60
	}
	if o.Title == "" {
		o.Title = "horizon"
	}
	initWindow(o)
	defer rl.CloseWindow()

	a := &App{
		sched:   sched,
		store:   o.Store,
		fps:     o.FPS,
		font:    loadFont(),
		gif:     record.NewGIF(1),
		showHUD: true,
	}
	defer a.unload()
	a.resize()
	return a.RunLoop()
}

func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() {
		if quit := a.Update(); quit {
			return nil
		}
		if err := a.Step(); err != nil {
			return err
		}
		a.Draw()
	}
	return nil
}

// layout is the glyph grid that fills a window of w×h pixels.
func layout(w, h int) (cols, rows int) {
	return max(w/cellW, 1), max((h-hudH)/cellH, 1)
}

func (a *App) resize() {
	cols, rows := layout(rl.GetScreenWidth(), rl.GetScreenHeight())
	if err := a.sched.Session().ResizeCells(cols, rows); err != nil {
		a.status = err.Error()
	}
}

// Update handles input and reports whether the user asked to quit.
func (a *App) Update() bool {
	sess := a.sched.Session()
	if rl.IsKeyPressed(rl.KeyQ) {
		return true
	}
	if rl.IsWindowResized() {
		a.resize()
	}

	switch {
	case rl.IsKeyPressed(rl.KeyOne):
		sess.RequestFlight("about")
	case rl.IsKeyPressed(rl.KeyTwo):
		sess.RequestFlight("projects")
	case rl.IsKeyPressed(rl.KeyThree):
		sess.RequestFlight("contact")
	case rl.IsKeyPressed(rl.KeyH), rl.IsKeyPressed(rl.KeyZero):
		sess.RequestFlight(camera.HomeTarget)
	case rl.IsKeyPressed(rl.KeyM):
		sess.ToggleGlyphMode()
	case rl.IsKeyPressed(rl.KeyT):
		a.status = "theme: " + sess.CycleTheme().Name
	case rl.IsKeyPressed(rl.KeyG):
		a.toggleRecording()
	case rl.IsKeyPressed(rl.KeyS):
		a.showHUD = !a.showHUD
	}

	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		// window pixels to raster pixels
		w, _ := sess.Size()
		k := dragScale * float64(w) / float64(max(rl.GetScreenWidth(), 1))
		sess.Drag(float64(d.X)*k, float64(d.Y)*k)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		if wheel > 0 {
			sess.Zoom(0.9)
		} else {
			sess.Zoom(1.1)
		}
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		sess.Zoom(0.9)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		sess.Zoom(1.1)
	}
	return false
}

// Step ticks the session with the measured frame time.
func (a *App) Step() error {
	dt := float64(rl.GetFrameTime())
	if dt <= 0 {
		dt = 1 / float64(a.fps)
	}
	f, err := a.sched.Tick(dt)
	if err != nil {
		if f.Skipped {
			a.status = "frame skipped"
			return nil
		}
		return err
	}
	a.frame = f
	if a.recording {
		a.capture()
	}
	return nil
}

func (a *App) capture() {
	var ok bool
	if g := a.frame.Surface.Grid; g != nil {
		ok = a.gif.AddGrid(*g)
	} else if r := a.frame.Surface.Raster; r != nil {
		ok = a.gif.AddRaster(r)
	}
	if !ok {
		a.toggleRecording()
	}
}

func (a *App) toggleRecording() {
	if !a.recording {
		a.gif.Reset()
		a.recording = true
		a.status = "recording"
		return
	}
	a.recording = false
	if a.store == nil || a.gif.Len() == 0 {
		a.status = "recording discarded"
		return
	}
	sess := a.sched.Session()
	meta, err := a.store.SaveGIF(a.gif, sess.Config().Preset, sess.GlyphMode())
	if err != nil {
		sess.Logger().Error("save recording", "err", err)
		a.status = "save failed"
		return
	}
	a.status = "saved " + a.store.Dir(meta.ID)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	switch s := a.frame.Surface; {
	case s.Grid != nil:
		a.drawGrid(*s.Grid)
	case s.Raster != nil:
		a.drawRaster(s.Raster)
	}
	if a.showHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

// drawRaster uploads the frame and stretches it over the canvas area.
func (a *App) drawRaster(r *render.Raster) {
	a.upload(r)
	src := rl.NewRectangle(0, 0, float32(r.Width), float32(r.Height))
	dst := rl.NewRectangle(0, 0, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()-hudH))
	rl.DrawTexturePro(a.tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func (a *App) upload(r *render.Raster) {
	if r.Width != a.texW || r.Height != a.texH {
		if a.texW > 0 {
			rl.UnloadTexture(a.tex)
		}
		img := rl.NewImageFromImage(r.Image())
		a.tex = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		a.texW, a.texH = r.Width, r.Height
		a.pixels = make([]color.RGBA, r.Width*r.Height)
		return
	}
	for i, c := range r.Pix {
		a.pixels[i] = c.RGBA()
	}
	rl.UpdateTexture(a.tex, a.pixels)
}

func (a *App) drawGrid(g glyph.Grid) {
	fg := themeColor(string(g.Theme.Foreground))
	bg := themeColor(string(g.Theme.Background))
	rl.DrawRectangle(0, 0, int32(g.Cols*cellW), int32(g.Rows*cellH), bg)
	for row := range g.Rows {
		for col := range g.Cols {
			ch := g.At(col, row)
			x, y := float32(col*cellW), float32(row*cellH)
			if ch >= 0x2800 && ch <= 0x28FF {
				drawBraille(x, y, ch, fg)
				continue
			}
			if ch != ' ' {
				rl.DrawTextCodepoint(a.font, ch, rl.NewVector2(x, y), fontSize, fg)
			}
		}
	}
}

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func drawBraille(x, y float32, ch rune, c rl.Color) {
	bits := ch - 0x2800
	for dy := range 4 {
		for dx := range 2 {
			if bits&dotBits[dy][dx] == 0 {
				continue
			}
			cx := x + float32(dx*cellW/2) + cellW/4
			cy := y + float32(dy*cellH/4) + cellH/8
			rl.DrawCircleV(rl.NewVector2(cx, cy), 1.5, c)
		}
	}
}

func (a *App) DrawHUD() {
	sess := a.sched.Session()
	st := sess.State()
	stats := a.sched.Stats()
	y := int32(rl.GetScreenHeight() - hudH + 6)

	mode := "raw"
	if sess.GlyphMode() {
		mode = "glyph"
	}
	line := fmt.Sprintf("horizon :: %s :: %s :: %s %3.0f%%", sess.Config().Preset, mode, st.Flight.Mode, st.Flight.Progress*100)
	a.drawText(line, 10, y, ColText)
	a.drawText("[1-3/H] FLY  [M] GLYPH  [T] THEME  [G] REC  [Q] QUIT", 420, y, ColTextDim)

	right := fmt.Sprintf("%d FPS  %d skipped", rl.GetFPS(), stats.Skipped)
	if a.recording {
		a.drawText(fmt.Sprintf("REC %d", a.gif.Len()), int32(rl.GetScreenWidth()-260), y, ColRec)
	}
	a.drawText(right, int32(rl.GetScreenWidth()-170), y, ColTextDim)
	if a.status != "" {
		a.drawText(a.status, 10, y-int32(hudH), ColTextDim)
	}
}

func (a *App) drawText(text string, x, y int32, c rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), 14, 1, c)
}

func (a *App) unload() {
	if a.texW > 0 {
		rl.UnloadTexture(a.tex)
	}
}

func themeColor(hex string) rl.Color {
	c, err := render.ParseHex(hex)
	if err != nil {
		return rl.White
	}
	px := c.RGBA()
	return rl.NewColor(px.R, px.G, px.B, 255)
}
