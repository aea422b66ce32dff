package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	httpadp "nbfc-loan-ledger/internal/adapter/http"
	"nbfc-loan-ledger/internal/adapter/repository/mysql"
	"nbfc-loan-ledger/internal/config"
	"nbfc-loan-ledger/internal/infrastructure/cache"
	"nbfc-loan-ledger/internal/infrastructure/db"
	"nbfc-loan-ledger/internal/ledger"
	"nbfc-loan-ledger/internal/metrics"
	"nbfc-loan-ledger/internal/usecase/adjustment"
	"nbfc-loan-ledger/internal/usecase/loan"
	"nbfc-loan-ledger/internal/usecase/overdue"
	"nbfc-loan-ledger/internal/usecase/repayment"
	"nbfc-loan-ledger/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("ledger: exiting", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := mysql.AutoMigrate(gdb); err != nil {
		return err
	}

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	split, err := ledger.PolicyByName(cfg.RepaymentSplit)
	if err != nil {
		return err
	}

	m := metrics.New()
	tx := mysql.NewGormUoW(gdb)
	e := httpadp.NewServer(logger, rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, httpadp.Handlers{
		Health:      httpadp.NewHandler(),
		Loans:       httpadp.NewLoanHandler(loan.NewUsecase(tx, m)),
		Repayments:  httpadp.NewRepaymentHandler(repayment.NewUsecase(tx, split, m)),
		Adjustments: httpadp.NewAdjustmentHandler(adjustment.NewUsecase(tx, m)),
		Metrics:     m.Handler(),
	})

	sched := cron.New(cron.WithLocation(time.UTC))
	if _, err := overdue.NewSweeper(tx, m).Schedule(sched, cfg.OverdueScanCron); err != nil {
		return err
	}
	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	srvErr := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		slog.Info("ledger: listening", "addr", addr, "db", cfg.DBDriver, "split", split.Name())
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
			return
		}
		srvErr <- nil
	}()

	select {
	case err := <-srvErr:
		return err
	case <-ctx.Done():
		slog.Info("ledger: shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("ledger: http shutdown", "error", err)
	}
	slog.Info("ledger: shutdown complete")
	return nil
}
