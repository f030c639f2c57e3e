package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pingreport/internal/config"
	"pingreport/internal/http/handler"
	"pingreport/internal/http/handler/middleware"
	"pingreport/internal/http/server"
	"pingreport/pkg/log"

	"go.uber.org/zap/zapcore"
)

// Upstream serves GET /ping for local runs of the report command.
func Upstream() error {
	logger := log.NewZapLogger("pong", zapcore.InfoLevel)
	defer logger.Sync()

	config, err := config.NewApp()
	if err != nil {
		logger.Errorw("failed to create config", "error", err)
		return err
	}

	pingHlr := handler.NewPingHandler(logger)

	// middleware
	mux := http.NewServeMux()
	hdlr := middleware.NewLoggingMiddleware(logger).Logging(mux)
	hdlr = middleware.NewRequestIDMiddleware().RequestID(hdlr)

	// register routes
	mux.HandleFunc(handler.Ping, pingHlr.HandlePing)

	srv := server.NewHTTP(logger, hdlr, config.Port)

	// expect a signal to gracefully shutdown the server
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sig)

	return run(srv, sig)
}

type httpServer interface {
	Run() <-chan error
	Shutdown() error
}

func run(server httpServer, sig <-chan os.Signal) error {
	errChan := server.Run()

	var err error
	select {
	case <-sig:
	case err = <-errChan:
	}

	sdErr := server.Shutdown()
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		if sdErr != nil {
			return fmt.Errorf("server shutdown: %w", sdErr)
		}
		return nil
	}

	return err
}
