package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tinoosan/smartbudget/internal/events/amqp"
	"github.com/tinoosan/smartbudget/internal/httpapi"
	"github.com/tinoosan/smartbudget/internal/service/budget"
	"github.com/tinoosan/smartbudget/internal/service/user"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, cfg := a.logger, a.cfg

	st, closeStore, err := openStore(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	cat, closeCat, err := buildCategorizer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCat()

	budgetOpts := []budget.Option{budget.WithLogger(logger)}
	var pub *amqp.Publisher
	if cfg.AMQP.URL != "" {
		pub, err = amqp.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey, logger)
		if err != nil {
			return err
		}
		defer pub.Close()
		budgetOpts = append(budgetOpts, budget.WithPublisher(pub))
		logger.Info("publishing transaction events", "exchange", cfg.AMQP.Exchange)
	}

	secret := cfg.Auth.Secret
	if secret == "" {
		secret, err = ephemeralSecret()
		if err != nil {
			return err
		}
		logger.Warn("auth.secret not set; using an ephemeral secret, sessions will not survive a restart")
	}

	api := httpapi.New(
		user.New(st, st),
		budget.New(st, st, cat, budgetOpts...),
		cat,
		httpapi.Config{Secret: secret, Issuer: cfg.Auth.Issuer, TokenTTL: cfg.Auth.TokenTTL, Currency: cfg.Currency},
		logger,
		st,
	)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("smartbudget listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if pub != nil {
		closed := pub.NotifyClose()
		g.Go(func() error {
			select {
			case <-gctx.Done():
			case amqpErr, ok := <-closed:
				if ok && amqpErr != nil {
					logger.Error("amqp connection closed; events are no longer published", "err", amqpErr)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("server error", "err", err)
		return err
	}
	logger.Info("smartbudget stopped")
	return nil
}

func ephemeralSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
