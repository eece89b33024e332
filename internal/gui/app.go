package gui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/dynadraw/internal/dynamo"
	"github.com/san-kum/dynadraw/internal/experiment"
)

const Title = "dynadraw"

// App is the window front end. Raylib owns the window, input and the texture
// the raster is uploaded to; all drawing still happens on the experiment's
// canvas.
type App struct {
	exp    *experiment.Experiment
	tex    rl.Texture2D
	pixels []color.RGBA
	loaded bool
	logger *slog.Logger
}

func initWindow(w, h, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(w), int32(h), Title)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(rl.KeyEscape)
}

func NewApp(exp *experiment.Experiment, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &App{exp: exp, logger: logger}
}

// Run opens a window sized from the experiment config and blocks until it is
// closed or ctx is done.
func Run(ctx context.Context, exp *experiment.Experiment, logger *slog.Logger) error {
	cfg := exp.Config()
	initWindow(cfg.Width, cfg.Height, cfg.FPS)
	defer rl.CloseWindow()

	app := NewApp(exp, logger)
	defer app.Close()
	return app.RunLoop(ctx)
}

func (a *App) RunLoop(ctx context.Context) error {
	for !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		a.Update()
		if _, err := a.exp.Frame(); err != nil {
			return err
		}
		if err := a.upload(); err != nil {
			return err
		}
		a.Draw()
	}
	return nil
}

// Update turns this frame's window input into simulator events.
func (a *App) Update() {
	if rl.IsWindowResized() {
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
		a.logger.Debug("window resized", "width", w, "height", h)
		a.exp.Resize(w, h)
	}

	for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
		a.exp.Key(rune(c))
	}

	mp := rl.GetMousePosition()
	at := dynamo.V(float64(mp.X), float64(mp.Y))
	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		a.exp.Press(at)
	case rl.IsMouseButtonReleased(rl.MouseLeftButton):
		a.exp.Release(at)
	default:
		a.exp.Move(at)
	}
}

// upload copies the raster into the window texture, reallocating the texture
// when the raster size changed.
func (a *App) upload() error {
	img, ok := a.exp.Canvas().Image().(*image.RGBA)
	if !ok {
		return fmt.Errorf("unexpected raster type %T", a.exp.Canvas().Image())
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	if !a.loaded || int(a.tex.Width) != w || int(a.tex.Height) != h {
		if a.loaded {
			rl.UnloadTexture(a.tex)
		}
		ri := rl.NewImageFromImage(img)
		a.tex = rl.LoadTextureFromImage(ri)
		rl.UnloadImage(ri)
		a.loaded = true
		return nil
	}

	a.pixels = rgbaPixels(img, a.pixels)
	rl.UpdateTexture(a.tex, a.pixels)
	return nil
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.exp.Simulator().Background())
	if a.loaded {
		rl.DrawTexture(a.tex, 0, 0, rl.White)
	}
	a.drawSliders()
	a.drawCredit()
	rl.EndDrawing()
}

func (a *App) Close() {
	if a.loaded {
		rl.UnloadTexture(a.tex)
		a.loaded = false
	}
}

// rgbaPixels flattens img into dst, growing dst as needed.
func rgbaPixels(img *image.RGBA, dst []color.RGBA) []color.RGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if cap(dst) < w*h {
		dst = make([]color.RGBA, w*h)
	}
	dst = dst[:w*h]
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			p := row[x*4 : x*4+4]
			dst[y*w+x] = color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
		}
	}
	return dst
}
