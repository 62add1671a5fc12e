package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
)

var ErrClosed = errors.New("renderer closed")

// Frame is a finished pixel buffer together with the snapshot it was computed from.
type Frame struct {
	Elapsed  time.Duration
	Image    *image.RGBA
	Params   Params
	Sequence uint64
}

type Stats struct {
	Rendered   uint64
	Requested  uint64
	Superseded uint64
}

type request struct {
	params   Params
	sequence uint64
}

/*
 * Renderer recomputes one fractal view on demand.
 *
 * - Requests go through a single slot mailbox. A new request replaces a pending one and cancels the render that is
 *   in flight, so at most one render runs at a time and nothing queues up behind it.
 * - Finished frames are published atomically and pushed to subscribers. A frame is only published when no newer
 *   request arrived while it was being computed.
 */
type Renderer struct {
	cancel      context.CancelFunc
	ctx         context.Context
	done        chan struct{}
	inFlight    context.CancelFunc
	latest      atomic.Pointer[Frame]
	logger      bslogger.Logger
	mailbox     chan request
	mutex       sync.Mutex
	name        string
	nextID      int
	rendered    atomic.Uint64
	requested   uint64
	subscribers map[int]chan *Frame
	superseded  atomic.Uint64
	workers     int
}

func NewRenderer(name string, workers int) *Renderer {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Renderer{
		cancel:      cancel,
		ctx:         ctx,
		done:        make(chan struct{}),
		logger:      bslogger.NewLogger(fmt.Sprintf("%sRenderer", name), bslogger.Normal, nil),
		mailbox:     make(chan request, 1),
		name:        name,
		subscribers: make(map[int]chan *Frame),
		workers:     workers,
	}
	go r.run()
	return r
}

// Request schedules a render of p, superseding anything pending or in flight. It returns the request sequence
// number that the resulting Frame will carry.
func (r *Renderer) Request(p Params) (uint64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.ctx.Err() != nil {
		return 0, ErrClosed
	}

	r.requested++
	if r.inFlight != nil {
		r.inFlight()
	}

	// Only Request sends and it holds the mutex, so after draining the slot the send cannot block
	select {
	case <-r.mailbox:
		r.superseded.Add(1)
	default:
	}
	r.mailbox <- request{params: p, sequence: r.requested}
	return r.requested, nil
}

// Latest returns the most recently published frame, or nil before the first one.
func (r *Renderer) Latest() *Frame {
	return r.latest.Load()
}

// Subscribe delivers published frames. The channel holds one frame and a slow reader only ever sees the newest
// one. The channel is closed by unsubscribe or Close.
func (r *Renderer) Subscribe() (<-chan *Frame, func()) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	frames := make(chan *Frame, 1)
	if r.ctx.Err() != nil {
		close(frames)
		return frames, func() {}
	}

	id := r.nextID
	r.nextID++
	r.subscribers[id] = frames

	var once sync.Once
	return frames, func() {
		once.Do(func() {
			r.mutex.Lock()
			defer r.mutex.Unlock()
			if ch, ok := r.subscribers[id]; ok {
				delete(r.subscribers, id)
				close(ch)
			}
		})
	}
}

func (r *Renderer) Stats() Stats {
	r.mutex.Lock()
	requested := r.requested
	r.mutex.Unlock()
	return Stats{
		Rendered:   r.rendered.Load(),
		Requested:  requested,
		Superseded: r.superseded.Load(),
	}
}

func (r *Renderer) Close() error {
	r.mutex.Lock()
	if r.ctx.Err() != nil {
		r.mutex.Unlock()
		return ErrClosed
	}
	r.cancel()
	r.mutex.Unlock()

	<-r.done

	r.mutex.Lock()
	for id, ch := range r.subscribers {
		delete(r.subscribers, id)
		close(ch)
	}
	r.mutex.Unlock()

	r.logger.Info("Stopped renderer")
	return nil
}

func (r *Renderer) run() {
	defer close(r.done)

	for {
		select {
		case <-r.ctx.Done():
			return
		case req := <-r.mailbox:
			r.process(req)
		}
	}
}

func (r *Renderer) process(req request) {
	r.mutex.Lock()
	if req.sequence != r.requested {
		r.mutex.Unlock()
		r.superseded.Add(1)
		return
	}
	ctx, cancel := context.WithCancel(r.ctx)
	r.inFlight = cancel
	r.mutex.Unlock()
	defer cancel()

	startTime := time.Now()
	img, err := Render(ctx, req.params, r.workers)
	elapsedTime := time.Since(startTime)

	r.mutex.Lock()
	r.inFlight = nil
	stale := req.sequence != r.requested
	r.mutex.Unlock()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			r.superseded.Add(1)
			r.logger.Debugf("Discarded %s frame %d after %s", r.name, req.sequence, elapsedTime)
			return
		}
		r.logger.Errorf("Rendering %s frame %d - %s", r.name, req.sequence, err)
		return
	}
	if stale {
		r.superseded.Add(1)
		r.logger.Debugf("Discarded stale %s frame %d", r.name, req.sequence)
		return
	}

	frame := &Frame{
		Elapsed:  elapsedTime,
		Image:    img,
		Params:   req.params,
		Sequence: req.sequence,
	}
	r.latest.Store(frame)
	r.rendered.Add(1)
	r.publish(frame)
	r.logger.Debugf("Rendered %s frame %d in %s", r.name, req.sequence, elapsedTime)
}

func (r *Renderer) publish(frame *Frame) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, ch := range r.subscribers {
		// keep only the newest frame in each subscriber slot
		select {
		case <-ch:
		default:
		}
		ch <- frame
	}
}
