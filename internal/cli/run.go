package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/blackdede/carbura/internal/adapter/http"
	"github.com/blackdede/carbura/internal/adapter/jsonout"
	kafkaadapter "github.com/blackdede/carbura/internal/adapter/kafka"
	"github.com/blackdede/carbura/internal/adapter/pdvinfo"
	"github.com/blackdede/carbura/internal/adapter/xmlsource"
	"github.com/blackdede/carbura/internal/domain"
	"github.com/blackdede/carbura/internal/observability"
	"github.com/blackdede/carbura/internal/pipeline"
)

var (
	runInput  string
	runOutput string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process the annual dataset and write the price series artifact",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if runInput != "" {
			cfg.Input.Path = runInput
		}
		if runOutput != "" {
			cfg.Output.Path = runOutput
		}
		if cfg.Input.Path == "" {
			return fmt.Errorf("input.path is required (set --input or CARBURA_INPUT_PATH)")
		}
		return runPipeline(cmd.Context())
	},
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "path to the annual dataset XML file")
	runCmd.Flags().StringVar(&runOutput, "output", "", "path of the JSON artifact to write")
}

func runPipeline(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics()

	source := xmlsource.NewFileSource(cfg.Input.Path, logger, cfg.Input.MaxStations)

	var resolver domain.NameResolver
	if cfg.Lookup.Enabled {
		resolver = pdvinfo.NewClient(cfg.Lookup.BaseURL, cfg.Lookup.Timeout, logger)
		logger.Info("name lookups enabled", "workers", cfg.Lookup.Workers, "timeout", cfg.Lookup.Timeout)
	} else {
		logger.Info("name lookups disabled")
	}

	emitters := []pipeline.Emitter{jsonout.NewWriter(cfg.Output.Path, logger)}

	var kafkaWriter *kafkaadapter.Writer
	if cfg.Kafka.Enabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		emitters = append(emitters, kafkaWriter)
		logger.Info("kafka sink enabled", "topic", cfg.Kafka.Topic)
	}

	anchor, err := cfg.Window.AnchorTime()
	if err != nil {
		return err
	}

	p := pipeline.New(source, resolver, emitters, pipeline.Options{
		Workers:    cfg.Lookup.Workers,
		WindowDays: cfg.Window.Days,
		Anchor:     anchor,
		Observer:   pipeline.NewLogObserver(logger, 1000),
	}, logger, metrics)

	var srv *httpadapter.Server
	if cfg.HTTP.Addr != "" {
		srv = httpadapter.NewServer(cfg.HTTP.Addr, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	runErr := p.Run(ctx)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	return runErr
}
