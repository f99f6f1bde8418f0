// cmd/preflight validates a pingwatch deployment before the daemon is
// started: config loads, sink paths are writable, sink settings parse.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/hamed0406/pingwatch/internal/config"
	"github.com/hamed0406/pingwatch/internal/notify"
)

func main() {
	configPath := flag.String("config", "/etc/pingwatch.yaml", "path to the YAML config")
	flag.Parse()

	fail := func(code int, msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(code)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.Load(*configPath)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrRead):
			fail(2, err.Error())
		case errors.Is(err, config.ErrParse):
			fail(3, err.Error())
		default:
			fail(4, err.Error())
		}
	}
	ok(fmt.Sprintf("config loads: %d host(s), interval %s", len(cfg.Hosts), cfg.Interval()))

	if cfg.Sinks.Log.Enabled {
		if err := checkWritable(cfg.Sinks.Log.Path); err != nil {
			fail(5, "log sink path not writable: "+err.Error())
		}
		ok("log sink path writable: " + cfg.Sinks.Log.Path)
	}
	if cfg.Sinks.Web.Enabled {
		if err := checkWritable(cfg.Sinks.Web.Path); err != nil {
			fail(5, "web sink path not writable: "+err.Error())
		}
		ok("web sink path writable: " + cfg.Sinks.Web.Path)
	}
	if cfg.Sinks.Syslog.Enabled {
		if _, err := notify.NewSyslog(cfg.Sinks.Syslog.Priority); err != nil {
			fail(5, "syslog sink: "+err.Error())
		}
		ok("syslog priority valid: " + cfg.Sinks.Syslog.Priority)
	}
	if err := checkWritable(filepath.Join(cfg.LogDir, "pingwatch.log")); err != nil {
		fail(5, "log dir not writable: "+err.Error())
	}
	ok("log dir writable: " + cfg.LogDir)

	if !cfg.Sinks.Mail.Enabled && !cfg.Sinks.Syslog.Enabled && !cfg.Sinks.Slack.Enabled {
		warn("no change-triggered sink enabled; state changes will only reach log/web")
	}
	if cfg.HTTPAddr == "" {
		warn("http_addr empty; status API disabled")
	} else {
		ok("status API on " + cfg.HTTPAddr)
	}

	ok("preflight passed")
}

// checkWritable proves the path can be created without leaving a file
// behind when it didn't exist before.
func checkWritable(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	_, statErr := os.Stat(path)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	_ = f.Close()
	if os.IsNotExist(statErr) {
		_ = os.Remove(path)
	}
	return nil
}
