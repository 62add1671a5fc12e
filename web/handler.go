package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"sync"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"FractalExplorer/explorer"
	"FractalExplorer/fractal"
	"FractalExplorer/plane"
	"FractalExplorer/render"
)

var ErrUnknownCommand = errors.New("unknown command")

// Command is a JSON text message sent by the browser
type Command struct {
	Height     int         `json:"height,omitempty"`
	Iterations int         `json:"iterations,omitempty"`
	Name       string      `json:"name,omitempty"`
	Rect       [4]int      `json:"rect"`
	Side       int         `json:"side,omitempty"`
	Type       string      `json:"type"`
	View       *plane.View `json:"view,omitempty"`
	Width      int         `json:"width,omitempty"`
	X          int         `json:"x,omitempty"`
	Y          int         `json:"y,omitempty"`
}

// Reply answers every command with the resulting state, or the error that rejected it
type Reply struct {
	Error      string          `json:"error,omitempty"`
	Favourites []string        `json:"favourites,omitempty"`
	Name       string          `json:"name,omitempty"`
	Seed       string          `json:"seed,omitempty"`
	State      *explorer.State `json:"state,omitempty"`
	Thumbnail  []byte          `json:"thumbnail,omitempty"`
	Type       string          `json:"type"`
}

/*
 * Handler streams an explorer session over a websocket.
 *
 * - Text messages from the client are Commands, each is answered by a Reply. Favourite thumbnails travel inside
 *   the Reply as png.
 * - Every frame the renderers publish is sent as a binary message: one byte holding the fractal.Kind followed by
 *   the png encoding. Only the newest frame of each kind is sent, superseded frames never leave the renderer.
 */
type Handler struct {
	cancel   context.CancelFunc
	ctx      context.Context
	explorer *explorer.Explorer
	logger   bslogger.Logger
	mutex    sync.Mutex
	sessions sync.WaitGroup

	OriginPatterns []string
}

func NewHandler(e *explorer.Explorer) *Handler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Handler{
		cancel:   cancel,
		ctx:      ctx,
		explorer: e,
		logger:   bslogger.NewLogger("WebHandler", bslogger.Normal, nil),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// sessions may only grow while the handler is open, Close waits on them
	h.mutex.Lock()
	if h.ctx.Err() != nil {
		h.mutex.Unlock()
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	h.sessions.Add(1)
	h.mutex.Unlock()
	defer h.sessions.Done()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.OriginPatterns,
	})
	if err != nil {
		h.logger.Warningf("Accepting websocket from %s - %s", r.RemoteAddr, err)
		return
	}
	h.logger.Infof("Opened session with %s", r.RemoteAddr)

	ctx, cancel := context.WithCancel(h.ctx)
	defer cancel()

	go h.streamFrames(ctx, cancel, conn)

	err = h.readCommands(ctx, conn)
	switch {
	case websocket.CloseStatus(err) == websocket.StatusNormalClosure, websocket.CloseStatus(err) == websocket.StatusGoingAway:
		conn.Close(websocket.StatusNormalClosure, "")
	case ctx.Err() != nil:
		conn.Close(websocket.StatusGoingAway, "server shutting down")
	default:
		h.logger.Warningf("Session with %s ended - %s", r.RemoteAddr, err)
		conn.Close(websocket.StatusInternalError, "")
	}
	h.logger.Infof("Closed session with %s", r.RemoteAddr)
}

// Close ends every open session and waits for their handlers to return
func (h *Handler) Close() {
	h.mutex.Lock()
	h.cancel()
	h.mutex.Unlock()
	h.sessions.Wait()
}

func (h *Handler) readCommands(ctx context.Context, conn *websocket.Conn) error {
	for {
		var command Command
		if err := wsjson.Read(ctx, conn, &command); err != nil {
			return err
		}
		if err := wsjson.Write(ctx, conn, h.apply(command)); err != nil {
			return err
		}
	}
}

func (h *Handler) apply(command Command) Reply {
	reply := Reply{Type: command.Type}

	var state explorer.State
	var err error
	switch command.Type {
	case "select":
		var seed plane.ComplexNumber
		seed, err = h.explorer.Select(command.X, command.Y)
		reply.Seed = seed.String()
		state = h.explorer.State()
	case "zoom":
		state, err = h.explorer.Zoom(image.Rect(command.Rect[0], command.Rect[1], command.Rect[2], command.Rect[3]))
	case "view":
		if command.View == nil {
			err = fmt.Errorf("%w: view command without a view", plane.ErrInvalidArgument)
			break
		}
		state, err = h.explorer.SetView(*command.View)
	case "iterations":
		state, err = h.explorer.SetIterations(command.Iterations)
	case "resize":
		state, err = h.explorer.Resize(command.Width, command.Height)
	case "reset":
		state, err = h.explorer.Reset()
	case "save":
		reply.Name, err = h.explorer.SaveJulia()
		state = h.explorer.State()
	case "favourites":
		reply.Favourites, err = h.explorer.Favourites()
		state = h.explorer.State()
	case "thumbnail":
		reply.Name = command.Name
		reply.Thumbnail, err = h.thumbnail(command.Name, command.Side)
		state = h.explorer.State()
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, command.Type)
	}

	if err != nil {
		reply.Error = err.Error()
		return reply
	}
	reply.State = &state
	return reply
}

// thumbnail returns the png of a scaled favourite, json carries it as base64
func (h *Handler) thumbnail(name string, side int) ([]byte, error) {
	img, err := h.explorer.Thumbnail(name, side)
	if err != nil {
		return nil, err
	}
	var buffer bytes.Buffer
	if err := png.Encode(&buffer, img); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (h *Handler) streamFrames(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn) {
	defer cancel()

	mandelbrot, unsubscribeMandelbrot := h.explorer.Mandelbrot.Subscribe()
	defer unsubscribeMandelbrot()
	julia, unsubscribeJulia := h.explorer.Julia.Subscribe()
	defer unsubscribeJulia()

	// catch a new session up with what is already on screen
	for _, frame := range []*render.Frame{h.explorer.Mandelbrot.Latest(), h.explorer.Julia.Latest()} {
		if frame == nil {
			continue
		}
		if err := writeFrame(ctx, conn, frame); err != nil {
			return
		}
	}

	for {
		var frame *render.Frame
		var ok bool
		select {
		case <-ctx.Done():
			return
		case frame, ok = <-mandelbrot:
		case frame, ok = <-julia:
		}
		if !ok {
			return
		}
		if err := writeFrame(ctx, conn, frame); err != nil {
			if ctx.Err() == nil {
				h.logger.Warningf("Sending %s frame %d - %s", frame.Params.Kind, frame.Sequence, err)
			}
			return
		}
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, frame *render.Frame) error {
	var buffer bytes.Buffer
	buffer.WriteByte(byte(frame.Params.Kind))
	if err := png.Encode(&buffer, frame.Image); err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageBinary, buffer.Bytes())
}

// DecodeFrame splits a binary frame message into its kind and image
func DecodeFrame(message []byte) (fractal.Kind, image.Image, error) {
	if len(message) < 2 {
		return 0, nil, fmt.Errorf("%w: frame message of %d bytes", plane.ErrInvalidArgument, len(message))
	}
	kind := fractal.Kind(message[0])
	if kind != fractal.Mandelbrot && kind != fractal.Julia {
		return 0, nil, fmt.Errorf("%w: kind %d", fractal.ErrInvalidArgument, message[0])
	}
	img, err := png.Decode(bytes.NewReader(message[1:]))
	return kind, img, err
}
