package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"github.com/veandco/go-sdl2/sdl"

	"vidframe/pkg/settings"
	"vidframe/pkg/videofs"
	"vidframe/screens/player"
)

const targetFPS = 60

func main() {
	// SDL video must stay on the main OS thread.
	runtime.LockOSThread()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	app := &cli.App{
		Name:  "vidframe",
		Usage: "play a local video file on a GPU surface",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "video-path",
				Usage:    "path to the video file to play (or s3://bucket/key)",
				Required: true,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("vidframe: %v", err)
	}
}

func run(c *cli.Context) error {
	cfg := settings.Load()

	path, cleanup, err := videofs.Resolve(c.String("video-path"))
	if err != nil {
		return err
	}
	defer cleanup()

	if err := initSDL(); err != nil {
		return err
	}
	defer sdl.Quit()

	window, renderer, err := createWindowAndRenderer(cfg)
	if err != nil {
		return err
	}
	defer window.Destroy()
	defer renderer.Destroy()

	screen, err := player.New(window, renderer, path, cfg)
	if err != nil {
		return err
	}
	defer screen.Close()

	runLoop(screen)
	return nil
}

// initSDL initializes the video subsystem, walking a driver fallback chain
// so the player comes up on embedded targets (kmsdrm) as well as desktop
// sessions.
func initSDL() error {
	var drivers []string
	if env := os.Getenv("SDL_VIDEODRIVER"); env != "" {
		drivers = []string{env}
	} else if runtime.GOOS == "darwin" {
		drivers = []string{"cocoa", "software", "dummy"}
	} else {
		drivers = []string{"kmsdrm", "wayland", "x11", "software", "dummy"}
	}

	for _, driver := range drivers {
		sdl.Quit()
		os.Setenv("SDL_VIDEODRIVER", driver)
		sdl.SetHint(sdl.HINT_VIDEO_MINIMIZE_ON_FOCUS_LOSS, "0")

		if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
			log.Printf("SDL init failed with %s driver: %v", driver, err)
			continue
		}
		if name, err := sdl.GetCurrentVideoDriver(); err == nil {
			log.Printf("SDL video driver: %s", name)
		}
		return nil
	}
	return fmt.Errorf("all SDL video drivers failed")
}

// createWindowAndRenderer builds the render surface: fullscreen at the
// display's native mode unless windowed mode was requested, hardware
// accelerated with a software fallback.
func createWindowAndRenderer(cfg settings.Settings) (*sdl.Window, *sdl.Renderer, error) {
	var flags uint32 = sdl.WINDOW_SHOWN
	w, h := cfg.WindowWidth, cfg.WindowHeight
	if !cfg.Windowed {
		flags |= sdl.WINDOW_FULLSCREEN
		if mode, err := sdl.GetCurrentDisplayMode(0); err == nil {
			w, h = mode.W, mode.H
		}
	}

	window, err := sdl.CreateWindow("vidframe",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, w, h, flags)
	if err != nil {
		return nil, nil, fmt.Errorf("create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1,
		sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		log.Printf("accelerated renderer unavailable, trying software: %v", err)
		renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
		if err != nil {
			window.Destroy()
			return nil, nil, fmt.Errorf("create renderer: %w", err)
		}
	}

	// Alpha blending for the pause overlay.
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	return window, renderer, nil
}

// runLoop drives the screen at a fixed cadence until quit or escape.
func runLoop(screen *player.Screen) {
	frameTime := time.Second / targetFPS

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					return
				}
			}
		}

		start := time.Now()
		if err := screen.Update(); err != nil {
			log.Printf("update error: %v", err)
			return
		}
		if err := screen.Draw(); err != nil {
			log.Printf("draw error: %v", err)
			return
		}

		if elapsed := time.Since(start); elapsed < frameTime {
			sdl.Delay(uint32((frameTime - elapsed) / time.Millisecond))
		}
	}
}
