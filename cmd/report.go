package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"

	"pingreport/internal/config"
	"pingreport/internal/core"
	"pingreport/internal/upstream"
	"pingreport/pkg/log"

	"go.uber.org/zap/zapcore"
)

// Report pings the upstream once and prints the envelope to stdout. Logs go
// to stderr; stdout stays empty on any failure.
func Report(stdout, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config, err := config.NewApp()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := log.New("pingreport", config.Level(), zapcore.AddSync(stderr))
	defer logger.Sync()

	// no timeout: the report waits on the upstream for as long as it takes
	client := upstream.NewClient(logger, &http.Client{}, config.UpstreamURL)

	reporter := core.NewReporter(logger, client)
	if err := reporter.Run(ctx, stdout); err != nil {
		logger.Errorw("report failed", "error", err, "upstream", config.UpstreamURL)
		return err
	}

	return nil
}
