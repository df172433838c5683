package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shipping-management/internal/app"
	"shipping-management/internal/events"
	"shipping-management/internal/logger"
	"shipping-management/internal/routes"
	"shipping-management/internal/scheduler"
	"shipping-management/pkg/mqtt"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the job scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.JWT.Secret == "" {
		return errors.New("JWT secret is missing, set JWT_SECRET")
	}

	logger.Info("Starting application",
		zap.String("environment", cfg.Server.Environment),
		zap.String("database_driver", cfg.Database.Driver),
	)

	repos, closeRepos, err := openRepositories()
	if err != nil {
		return err
	}
	defer closeRepos()

	container := app.New(cfg, repos, nil)
	if err := container.EnsureAdmin(ctx); err != nil {
		return err
	}

	if cfg.MQTT.Broker != "" {
		client := mqtt.NewClient(&mqtt.Config{
			Broker:       cfg.MQTT.Broker,
			ClientID:     cfg.MQTT.ClientID,
			Username:     cfg.MQTT.Username,
			Password:     cfg.MQTT.Password,
			CleanSession: true,
		}, logger.Logger)
		if err := client.Connect(); err != nil {
			logger.Warn("MQTT broker unreachable, shipment events stay local",
				zap.Error(err),
				zap.String("event", "mqtt_disabled"),
			)
		} else {
			defer client.Disconnect()
			events.NewMQTTSink(client, cfg.MQTT.TopicPrefix, cfg.MQTT.QoS).Register(container.Bus)
		}
	}

	if cfg.Scheduler.Enabled {
		orchestrator := scheduler.NewOrchestrator(container.Schedule()...)
		if err := orchestrator.Start(ctx); err != nil {
			return err
		}
		defer orchestrator.Stop()
	}

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      routes.SetupRoutes(container),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	logger.Info("Shutdown Server ...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("Server exited properly")
	return nil
}
