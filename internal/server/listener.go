package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

type listener struct {
	serve    func() error
	shutdown func(context.Context) error
}

func newListener(cfg Config, handler http.Handler) listener {
	if cfg.Engine == constants.ServerEngineFastHTTP {
		srv := &fasthttp.Server{
			Handler:            fasthttpadaptor.NewFastHTTPHandler(handler),
			Name:               "finance-calculators",
			ReadTimeout:        readTimeout,
			WriteTimeout:       writeTimeout,
			IdleTimeout:        idleTimeout,
			MaxRequestBodySize: int(cfg.BodySizeBytes()),
		}
		return listener{
			serve:    func() error { return srv.ListenAndServe(cfg.Address) },
			shutdown: srv.ShutdownWithContext,
		}
	}

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return listener{
		serve: func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
		shutdown: srv.Shutdown,
	}
}
