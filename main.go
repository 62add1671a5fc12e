package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/BrugadaSyndrome/multirpc"

	"FractalExplorer/explorer"
	"FractalExplorer/fractal"
	"FractalExplorer/gallery"
	"FractalExplorer/misc"
	"FractalExplorer/plane"
	"FractalExplorer/render"
	"FractalExplorer/rpc"
	"FractalExplorer/web"
)

var (
	kindName, renderFile, seedText, settingsFile string
	serve                                        bool
)

func main() {
	parseArguments()
	logger := bslogger.NewLogger("FractalExplorer", bslogger.Normal, nil)

	s, err := NewSettings(settingsFile)
	misc.CheckError(err, logger, misc.Fatal)

	if renderFile == "" && !serve {
		logger.Fatal("Please specify -render <file> or -serve")
	}

	if renderFile != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		startTime := time.Now()
		err := renderToFile(ctx, s, kindName, seedText, renderFile)
		stop()
		misc.CheckErrorf(err, logger, misc.Fatal, "Rendering %s", renderFile)
		logger.Infof("Saved image to %s in %s", renderFile, time.Since(startTime))
	}

	if serve {
		misc.CheckError(serveSession(s, logger), logger, misc.Fatal)
	}
}

func parseArguments() {
	flag.StringVar(&settingsFile, "settings", "", "Json settings file, defaults are used when empty")
	flag.StringVar(&renderFile, "render", "", "Render one frame to this file (.png, .bmp or .tiff)")
	flag.StringVar(&kindName, "kind", fractal.Mandelbrot.String(), "Fractal to render: mandelbrot or julia")
	flag.StringVar(&seedText, "seed", "", "Julia seed as real,imaginary e.g. -0.8,0.156")
	flag.BoolVar(&serve, "serve", false, "Serve an explorer session over rpc and websocket until interrupted")
	flag.Parse()
}

// parseSeed reads "real,imaginary"
func parseSeed(text string) (plane.ComplexNumber, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return plane.ComplexNumber{}, fmt.Errorf("%w: seed %q is not real,imaginary", plane.ErrInvalidArgument, text)
	}
	realPart, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return plane.ComplexNumber{}, fmt.Errorf("%w: seed real part - %w", plane.ErrInvalidArgument, err)
	}
	imaginary, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return plane.ComplexNumber{}, fmt.Errorf("%w: seed imaginary part - %w", plane.ErrInvalidArgument, err)
	}
	return plane.ComplexNumber{Real: realPart, Imaginary: imaginary}, nil
}

// renderToFile renders one frame of the configured view and writes it in the format its extension names
func renderToFile(ctx context.Context, s settings, kindName string, seedText string, file string) error {
	kind, err := fractal.ParseKind(kindName)
	if err != nil {
		return err
	}
	format, err := gallery.ParseFormat(filepath.Ext(file))
	if err != nil {
		return err
	}

	params := render.Params{
		Colorizer:     s.ExplorerSettings.FractalSettings.Colorizer(),
		Height:        s.ExplorerSettings.Height,
		Kind:          kind,
		MaxIterations: s.ExplorerSettings.FractalSettings.MaxIterations,
		View:          s.ExplorerSettings.View,
		Width:         s.ExplorerSettings.Width,
	}
	if kind == fractal.Julia {
		if params.Seed, err = parseSeed(seedText); err != nil {
			return err
		}
	}

	img, err := render.Render(ctx, params, s.ExplorerSettings.Workers)
	if err != nil {
		return err
	}

	var buffer bytes.Buffer
	if err := gallery.Encode(&buffer, img, format); err != nil {
		return err
	}
	_, err = misc.WriteFile(file, buffer.Bytes())
	return err
}

// serveSession runs the rpc and websocket surfaces of one explorer session until SIGINT or SIGTERM
func serveSession(s settings, logger bslogger.Logger) error {
	g, err := gallery.Open(s.GalleryPath, s.Format())
	if err != nil {
		return err
	}
	e, err := explorer.New(s.ExplorerSettings, g)
	if err != nil {
		return err
	}
	defer e.Close()

	rpcServer := multirpc.NewTcpServer(rpc.NewExplorer(e), s.RpcAddress, "RpcServer")
	if err := rpcServer.Run(); err != nil {
		return err
	}
	defer rpcServer.Stop()

	handler := web.NewHandler(e)
	handler.OriginPatterns = s.OriginPatterns
	webServer := web.NewHttpServer(s.WebAddress, "WebServer")
	webServer.Handle("/ws", handler)
	if err := webServer.Run(); err != nil {
		return err
	}
	defer webServer.Stop(5 * time.Second)
	defer handler.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	heartBeat := time.NewTicker(30 * time.Second)
	defer heartBeat.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down")
			return nil
		case <-heartBeat.C:
			mandelbrot, julia := e.Mandelbrot.Stats(), e.Julia.Stats()
			logger.Infof("Mandelbrot [Requested: %d] [Rendered: %d] [Superseded: %d] | Julia [Requested: %d] [Rendered: %d] [Superseded: %d]",
				mandelbrot.Requested, mandelbrot.Rendered, mandelbrot.Superseded, julia.Requested, julia.Rendered, julia.Superseded)
		}
	}
}
