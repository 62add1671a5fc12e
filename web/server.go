package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
)

// HttpServer serves a mux on its own listener so several servers can live in one process.
type HttpServer struct {
	address  string
	listener net.Listener
	mux      *http.ServeMux
	server   *http.Server

	Logger bslogger.Logger
	Name   string
	WG     *sync.WaitGroup
}

func NewHttpServer(address string, name string) *HttpServer {
	return &HttpServer{
		address: address,
		mux:     http.NewServeMux(),
		Logger:  bslogger.NewLogger(name, bslogger.Normal, nil),
		Name:    name,
		WG:      &sync.WaitGroup{},
	}
}

func (hs *HttpServer) Handle(pattern string, handler http.Handler) {
	hs.mux.Handle(pattern, handler)
}

// Address is the address the server listens at, it resolves ephemeral ports once Run succeeded.
func (hs *HttpServer) Address() string {
	if hs.listener != nil {
		return hs.listener.Addr().String()
	}
	return hs.address
}

func (hs *HttpServer) Run() error {
	var err error
	hs.listener, err = net.Listen("tcp", hs.address)
	if err != nil {
		hs.Logger.Errorf("Listening at address %s", hs.address)
		return err
	}

	hs.server = &http.Server{
		Handler:           hs.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	hs.WG.Add(1)
	go func() {
		defer hs.WG.Done()
		if err := hs.server.Serve(hs.listener); !errors.Is(err, http.ErrServerClosed) {
			hs.Logger.Errorf("Serving at address %s - %s", hs.Address(), err)
		}
	}()

	hs.Logger.Infof("Running server at address http://%s", hs.Address())
	return nil
}

// Stop waits up to timeout for handlers to finish before closing the remaining connections
func (hs *HttpServer) Stop(timeout time.Duration) error {
	if hs.server == nil {
		return nil
	}
	hs.Logger.Infof("Shutting down server at address %s", hs.Address())

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	err := hs.server.Shutdown(ctx)
	if err != nil {
		hs.Logger.Warningf("Forcing server at address %s closed - %s", hs.Address(), err)
		err = hs.server.Close()
	}
	hs.WG.Wait()
	return err
}
