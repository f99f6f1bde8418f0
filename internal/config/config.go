package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// Startup failure classes. main maps each to its own exit code so a
// broken deployment is distinguishable from a broken config file.
var (
	ErrRead    = errors.New("config unreadable")
	ErrParse   = errors.New("config unparsable")
	ErrInvalid = errors.New("config invalid")
)

type Config struct {
	Hosts           []string `yaml:"hosts"`
	IntervalSeconds int      `yaml:"interval_seconds"`
	TimeoutSeconds  int      `yaml:"timeout_seconds"`
	// Retries counts additional probe attempts after the first;
	// 0 means every host is probed exactly once per cycle.
	Retries        int    `yaml:"retries"`
	Concurrency    int    `yaml:"concurrency"`
	PingCommand    string `yaml:"ping_command"`
	ResolverServer string `yaml:"resolver_server"` // host:port; empty = OS resolver
	HTTPAddr       string `yaml:"http_addr"`       // empty disables the status server
	LogDir         string `yaml:"log_dir"`

	Sinks Sinks `yaml:"sinks"`
}

type Sinks struct {
	Mail   MailSink   `yaml:"mail"`
	Syslog SyslogSink `yaml:"syslog"`
	Log    LogSink    `yaml:"log"`
	Web    WebSink    `yaml:"web"`
	Slack  SlackSink  `yaml:"slack"`
}

type MailSink struct {
	Enabled  bool     `yaml:"enabled"`
	SMTPAddr string   `yaml:"smtp_addr"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
}

type SyslogSink struct {
	Enabled  bool   `yaml:"enabled"`
	Priority string `yaml:"priority"` // facility.severity, e.g. daemon.err
}

type LogSink struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type WebSink struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Title   string `yaml:"title"`
}

type SlackSink struct {
	Enabled bool   `yaml:"enabled"`
	Webhook string `yaml:"webhook"`
}

func Default() Config {
	return Config{
		IntervalSeconds: 300,
		TimeoutSeconds:  5,
		Retries:         1,
		Concurrency:     1,
		LogDir:          "logs",
		Sinks: Sinks{
			Syslog: SyslogSink{Priority: "daemon.err"},
			Web:    WebSink{Title: "host status"},
		},
	}
}

// Load reads and validates the YAML config. The file must exist: an
// unreadable host list is a deployment error, not a default.
func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrRead, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Hosts) == 0 {
		return fmt.Errorf("%w: no hosts configured", ErrInvalid)
	}
	for i, h := range c.Hosts {
		if h == "" {
			return fmt.Errorf("%w: host %d is empty", ErrInvalid, i)
		}
	}
	if c.IntervalSeconds <= 0 {
		return fmt.Errorf("%w: interval_seconds must be > 0", ErrInvalid)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: timeout_seconds must be > 0", ErrInvalid)
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: retries must be >= 0", ErrInvalid)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be >= 1", ErrInvalid)
	}
	if c.Sinks.Mail.Enabled {
		if c.Sinks.Mail.SMTPAddr == "" || c.Sinks.Mail.From == "" || len(c.Sinks.Mail.To) == 0 {
			return fmt.Errorf("%w: mail sink needs smtp_addr, from and to", ErrInvalid)
		}
	}
	if c.Sinks.Log.Enabled && c.Sinks.Log.Path == "" {
		return fmt.Errorf("%w: log sink needs a path", ErrInvalid)
	}
	if c.Sinks.Web.Enabled && c.Sinks.Web.Path == "" {
		return fmt.Errorf("%w: web sink needs a path", ErrInvalid)
	}
	if c.Sinks.Slack.Enabled && c.Sinks.Slack.Webhook == "" {
		return fmt.Errorf("%w: slack sink needs a webhook", ErrInvalid)
	}
	return nil
}

// Deployment knobs that differ per machine stay overridable without
// editing the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("PINGWATCH_HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv("PINGWATCH_LOG_DIR"); v != "" {
		c.LogDir = v
	}
}

func (c Config) Interval() time.Duration { return time.Duration(c.IntervalSeconds) * time.Second }
func (c Config) Timeout() time.Duration  { return time.Duration(c.TimeoutSeconds) * time.Second }

func (c Config) HostSpecs() []domain.HostSpec {
	out := make([]domain.HostSpec, 0, len(c.Hosts))
	for _, h := range c.Hosts {
		out = append(out, domain.HostSpec(h))
	}
	return out
}
