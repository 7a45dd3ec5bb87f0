package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-tracker/internal/app"
	"finance-tracker/internal/config"
	"finance-tracker/internal/domain/access"
	authmw "finance-tracker/internal/transport/httpserver/middleware"
	"finance-tracker/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logger.NewFromEnv()

	if len(os.Args) > 1 && os.Args[1] == "token" {
		os.Exit(issueToken(log, os.Args[2:]))
	}

	os.Exit(serve(log))
}

func serve(log logger.Logger) int {
	log.Info("app: starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		return 1
	}

	srv := application.HTTPServer()
	log.Info("http: listening", "addr", srv.Addr)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		exitCode = 1
	}

	if err := application.Close(); err != nil {
		log.Error("app: close failed", "err", err)
		exitCode = 1
	}

	if exitCode == 0 {
		log.Info("app: stopped")
	}
	return exitCode
}

// issueToken prints a signed bearer token for local use:
//
//	finance-tracker token -user alice -role admin
func issueToken(log logger.Logger, args []string) int {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	userID := fs.String("user", "", "user id placed in the token subject")
	role := fs.String("role", string(access.RoleStandard), "standard or admin")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *userID == "" {
		fmt.Fprintln(os.Stderr, "token: -user is required")
		return 2
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Critical("token: config failed", "err", err)
		return 1
	}
	if cfg.Auth.JWTSecret == "" {
		log.Critical("token: AUTH_JWT_SECRET is not set")
		return 1
	}

	token, err := authmw.IssueToken(cfg.Auth, access.Caller{ID: *userID, Role: access.ParseRole(*role)}, *ttl)
	if err != nil {
		log.Critical("token: signing failed", "err", err)
		return 1
	}

	fmt.Println(token)
	return 0
}
