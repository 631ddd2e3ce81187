package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mdjurovic/vitalis/internal"
	"github.com/mdjurovic/vitalis/internal/config"
	"github.com/mdjurovic/vitalis/internal/logging"
	"github.com/mdjurovic/vitalis/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    false,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "vitalis-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	if cfg.LogsPath != "" {
		logsDir := filepath.Dir(cfg.LogsPath)
		if exists, err := pkg.PathExists(logsDir, true); err != nil {
			log.Warnf("check logs dir [%s]: %s", logsDir, err)
		} else if !exists {
			log.Warnf("logs dir [%s] does not exist, log rotation will create it", logsDir)
		}
	}

	serviceToken := os.Getenv("VITALIS_SERVICE_TOKEN")
	if serviceToken == "" {
		log.Errorf("service token not set, mutations will be rejected. use VITALIS_SERVICE_TOKEN env var to set it")
	}

	redisPassword := os.Getenv("VITALIS_REDIS_PASS")
	if redisPassword == "" {
		log.Errorf("redis password not set. use VITALIS_REDIS_PASS")
	}

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	tracingEnabled := os.Getenv("VITALIS_TRACING_ENABLED") == "true"
	if !tracingEnabled {
		log.Debugln("tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:         cfg,
			ServiceToken:   serviceToken,
			RedisPassword:  redisPassword,
			VersionInfo:    versionInfo,
			TracingEnabled: tracingEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(ctx, cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, shutting down ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(stdout)), nil
}
