package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/config"
	"github.com/hamed0406/pingwatch/internal/cycle"
	"github.com/hamed0406/pingwatch/internal/httpapi"
	"github.com/hamed0406/pingwatch/internal/logging"
	"github.com/hamed0406/pingwatch/internal/notify"
	"github.com/hamed0406/pingwatch/internal/probe"
	"github.com/hamed0406/pingwatch/internal/scheduler"
	"github.com/hamed0406/pingwatch/internal/state"
	"github.com/hamed0406/pingwatch/internal/store"
)

// Exit codes: startup failures get a distinct code per class so init
// scripts can tell a bad deploy from a bad config edit.
const (
	exitOK          = 0
	exitHostsDown   = 1 // oneshot only
	exitConfigRead  = 2
	exitConfigParse = 3
	exitConfigBad   = 4
	exitSinkInit    = 5
)

func main() {
	var (
		configPath = flag.String("config", "/etc/pingwatch.yaml", "path to the YAML config")
		oneshot    = flag.Bool("oneshot", false, "run a single cycle, print the report, exit")
		hosts      = flag.StringSlice("hosts", nil, "override the configured host list")
		interval   = flag.Duration("interval", 0, "override the cycle interval")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pingwatch:", err)
		switch {
		case errors.Is(err, config.ErrRead):
			os.Exit(exitConfigRead)
		case errors.Is(err, config.ErrParse):
			os.Exit(exitConfigParse)
		default:
			os.Exit(exitConfigBad)
		}
	}
	if len(*hosts) > 0 {
		cfg.Hosts = *hosts
	}
	if *interval > 0 {
		cfg.IntervalSeconds = int(interval.Seconds())
	}

	executor := buildExecutor(cfg, nil)

	if *oneshot {
		os.Exit(runOneshot(cfg, executor))
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pingwatch: logger:", err)
		os.Exit(exitSinkInit)
	}
	defer logger.Sync()
	executor.Logger = logger

	latest := store.NewLatest()
	hub := httpapi.NewHub(logger)
	dispatcher, err := buildDispatcher(cfg, logger, latest, hub)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pingwatch: sinks:", err)
		os.Exit(exitSinkInit)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.HTTPAddr != "" {
		api := httpapi.NewServer(logger, latest, hub, cfg.HostSpecs(), cfg.Sinks.Web.Title)
		srv := &http.Server{Addr: cfg.HTTPAddr, Handler: api.Router()}
		go func() {
			logger.Info("api_listen", zap.String("addr", cfg.HTTPAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("api_error", zap.Error(err))
			}
		}()
		go func() {
			<-ctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
			hub.Close()
		}()
	}

	monitor := scheduler.NewMonitor(logger, cfg.HostSpecs(), executor, state.NewTracker(), dispatcher, cfg.Interval())
	logger.Info("monitor_start",
		zap.Int("hosts", len(cfg.Hosts)),
		zap.Duration("interval", cfg.Interval()),
		zap.Int("retries", cfg.Retries),
	)
	monitor.Run(ctx)
}

func buildExecutor(cfg config.Config, logger *zap.Logger) *cycle.Executor {
	var resolver probe.Resolver
	if cfg.ResolverServer != "" {
		resolver = probe.NewDNSResolver(cfg.ResolverServer, cfg.Timeout())
	} else {
		resolver = probe.NewSystemResolver()
	}

	pinger := probe.NewExecPinger(cfg.Timeout())
	if cfg.PingCommand != "" {
		pinger.Command = cfg.PingCommand
	}
	retrying := &probe.RetryPinger{Inner: pinger, Retries: cfg.Retries}

	return cycle.NewExecutor(logger, resolver, retrying, cfg.Concurrency)
}

func buildDispatcher(cfg config.Config, logger *zap.Logger, latest *store.Latest, hub *httpapi.Hub) (*notify.Dispatcher, error) {
	d := notify.NewDispatcher(logger)
	d.Recorders = append(d.Recorders, latest, hub)

	if cfg.Sinks.Log.Enabled {
		d.Recorders = append(d.Recorders, notify.NewLogSink(cfg.Sinks.Log.Path))
	}
	if cfg.Sinks.Web.Enabled {
		d.Recorders = append(d.Recorders, notify.NewWebSink(cfg.Sinks.Web.Path, cfg.Sinks.Web.Title))
	}
	if cfg.Sinks.Mail.Enabled {
		if m := notify.NewMail(cfg.Sinks.Mail.SMTPAddr, cfg.Sinks.Mail.From, cfg.Sinks.Mail.To); m != nil {
			d.Notifiers = append(d.Notifiers, m)
		}
	}
	if cfg.Sinks.Syslog.Enabled {
		s, err := notify.NewSyslog(cfg.Sinks.Syslog.Priority)
		if err != nil {
			return nil, err
		}
		d.Notifiers = append(d.Notifiers, s)
		d.Reporter = s
	}
	if cfg.Sinks.Slack.Enabled {
		if s := notify.NewSlack(cfg.Sinks.Slack.Webhook); s != nil {
			d.Notifiers = append(d.Notifiers, s)
		}
	}
	return d, nil
}

func runOneshot(cfg config.Config, executor *cycle.Executor) int {
	executor.Logger = zap.NewNop()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report := executor.RunCycle(ctx, cfg.HostSpecs())
	fmt.Print(report.Text())
	if report.AllUp() {
		return exitOK
	}
	return exitHostsDown
}
