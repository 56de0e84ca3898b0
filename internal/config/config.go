package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/sump-watch/internal/logger"
)

// Config holds every setting read by the sump-watch binaries.
type Config struct {
	// LogLevel is the minimum level written by the binaries.
	LogLevel string `yaml:"log_level"`
	// InstanceID identifies this installation to remote sinks; generated when empty.
	InstanceID string `yaml:"instance_id"`
	// Timeout bounds every network call made by sinks and clients.
	Timeout time.Duration `yaml:"timeout"`
	// HistoryLimit is the number of events kept by alarm clocks; <= 0 keeps all.
	HistoryLimit int `yaml:"history_limit"`
	// Pump configures the pump status input.
	Pump Pump `yaml:"pump"`
	// Tank configures the water depth sensor.
	Tank Tank `yaml:"tank"`
	// Sinks lists where events are sent.
	Sinks Sinks `yaml:"sinks"`
	// Alarms are evaluated after every event.
	Alarms []Alarm `yaml:"alarms"`
	// Server configures the pump server.
	Server Server `yaml:"server"`
	// Weather configures the weather poller.
	Weather *Weather `yaml:"weather,omitempty"`
}

// Weather configures polling AccuWeather current conditions.
type Weather struct {
	// APIKey is the AccuWeather API key.
	APIKey string `yaml:"api_key"`
	// LocationKey is the AccuWeather location to read.
	LocationKey string `yaml:"location_key"`
	// BaseURL overrides the current conditions endpoint.
	BaseURL string `yaml:"base_url,omitempty"`
	// Schedule is a cron spec or @every interval.
	Schedule string `yaml:"schedule,omitempty"`
}

// Pump describes the monitored status input.
type Pump struct {
	// Pin is the GPIO line number, used in logs and the default value file.
	Pin int `yaml:"pin"`
	// ValueFile holds the pin level as "0" or "1".
	ValueFile string `yaml:"value_file"`
	// Debounce is how long writes must settle before the pin is read.
	Debounce time.Duration `yaml:"debounce"`
	// PollInterval makes the watcher read the value file on a timer instead of
	// waiting for file events. Kernel sysfs value files never emit file events,
	// so files under SysfsGPIODir are polled every DefaultPollInterval unless set.
	PollInterval time.Duration `yaml:"poll_interval"`
}

// Tank describes the ultrasonic depth sensor.
type Tank struct {
	// DistanceFile holds the latest distance in centimetres, written by the sensor driver.
	DistanceFile string `yaml:"distance_file"`
	// SensorHeight is the sensor height above an empty tank, in centimetres.
	SensorHeight float64 `yaml:"sensor_height"`
	// Samples is the number of readings averaged per measurement.
	Samples int `yaml:"samples"`
	// SampleInterval is the pause between two readings.
	SampleInterval time.Duration `yaml:"sample_interval"`
	// Schedule is a cron spec for measurements.
	Schedule string `yaml:"schedule"`
}

// Sinks selects the outputs events are sent to.
type Sinks struct {
	// Console prints every event to stdout.
	Console bool `yaml:"console"`
	// ThingSpeak uploads events to a ThingSpeak channel.
	ThingSpeak *ThingSpeak `yaml:"thingspeak,omitempty"`
	// Remote forwards events to a pump server.
	Remote *Remote `yaml:"remote,omitempty"`
	// CloudWatch publishes events as metrics.
	CloudWatch *CloudWatch `yaml:"cloudwatch,omitempty"`
	// Mongo stores events in a collection.
	Mongo *Mongo `yaml:"mongo,omitempty"`
}

// ThingSpeak configures the ThingSpeak channel sink.
type ThingSpeak struct {
	// APIKey is the channel write key.
	APIKey string `yaml:"api_key"`
	// BaseURL overrides the update endpoint.
	BaseURL string `yaml:"base_url,omitempty"`
	// DryRun builds URLs without sending them.
	DryRun bool `yaml:"dry_run,omitempty"`
}

// Remote configures forwarding to a pump server.
type Remote struct {
	// ServerAddress is the gRPC address of the pump server.
	ServerAddress string `yaml:"server_addr"`
}

// CloudWatch configures the metric sink.
type CloudWatch struct {
	// Namespace groups the metrics.
	Namespace string `yaml:"namespace"`
	// MetricName names field 0; later fields get a numeric suffix.
	MetricName string `yaml:"metric_name"`
	// Region overrides the AWS region from the environment.
	Region string `yaml:"region,omitempty"`
}

// Mongo configures the MongoDB sink.
type Mongo struct {
	// URI is the connection string.
	URI string `yaml:"uri"`
	// Database is the database name.
	Database string `yaml:"database"`
	// Collection is the collection name.
	Collection string `yaml:"collection"`
}

// Alarm describes one trigger/action pair.
type Alarm struct {
	// Name labels the alarm in logs and notifications.
	Name string `yaml:"name"`
	// Trigger is one of TriggerLogged, TriggerGreater, TriggerLess.
	Trigger string `yaml:"trigger"`
	// Field selects the event field compared by threshold triggers.
	Field int `yaml:"field,omitempty"`
	// Value is the threshold or the single-field event to look for.
	Value float64 `yaml:"value"`
	// Action is one of ActionLog, ActionSNS, ActionCommand.
	Action string `yaml:"action"`
	// TopicARN is the SNS topic for ActionSNS.
	TopicARN string `yaml:"topic_arn,omitempty"`
	// Command is the program and arguments for ActionCommand.
	Command []string `yaml:"command,omitempty"`
}

// Server configures the pump server.
type Server struct {
	// ListenAddress is the gRPC listen address.
	ListenAddress string `yaml:"listen_addr"`
	// HTTPAddress is the status API listen address; empty disables it.
	HTTPAddress string `yaml:"http_addr,omitempty"`
	// StateFile persists the received history.
	StateFile string `yaml:"state_file"`
	// AccessLogLevel is the level of the status API access log, kept apart from LogLevel.
	AccessLogLevel string `yaml:"access_log_level,omitempty"`
}

// Trigger kinds.
const (
	TriggerLogged  = "logged"
	TriggerGreater = "greater"
	TriggerLess    = "less"
)

// Action kinds.
const (
	ActionLog     = "log"
	ActionSNS     = "sns"
	ActionCommand = "command"
)

const (
	// DefaultConfigFilename is the default settings filename.
	DefaultConfigFilename = "sump-watch.yaml"
	// DefaultStateFilename is the default history filename of the pump server.
	DefaultStateFilename = "sump-watch-history.json"
	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second
	// DefaultDebounce matches the 500ms bounce time used for the pump switch.
	DefaultDebounce = 500 * time.Millisecond
	// DefaultPollInterval is how often sysfs value files are read.
	DefaultPollInterval = 50 * time.Millisecond
	// SysfsGPIODir is where the kernel exports GPIO lines.
	SysfsGPIODir = "/sys/class/gpio/"
	// DefaultHistoryLimit keeps a week of one-per-minute events.
	DefaultHistoryLimit = 7 * 24 * 60
	// DefaultTankSamples is the number of readings per measurement.
	DefaultTankSamples = 20
	// DefaultSampleInterval is the pause between two readings.
	DefaultSampleInterval = 3 * time.Second
	// DefaultTankSchedule measures the tank every fifteen minutes.
	DefaultTankSchedule = "@every 15m"
	// DefaultWeatherURL is the AccuWeather current conditions endpoint.
	DefaultWeatherURL = "http://dataservice.accuweather.com/currentconditions/v1/"
	// DefaultWeatherSchedule stays within the free AccuWeather quota.
	DefaultWeatherSchedule = "@hourly"
	// DefaultListenAddress is the default gRPC listen address.
	DefaultListenAddress = ":50051"
	// DefaultAccessLogLevel hides successful status API requests.
	DefaultAccessLogLevel = "warn"
	// DefaultFilePermissions is the default permission for files written by the binaries.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownTrigger is returned for an unsupported alarm trigger.
	errUnknownTrigger = errors.New("unknown alarm trigger")
	// errUnknownAction is returned for an unsupported alarm action.
	errUnknownAction = errors.New("unknown alarm action")
	// errMissingField is returned when a required setting is empty.
	errMissingField = errors.New("required setting is missing")
	// errTooFewSamples is returned when the outlier filter cannot run.
	errTooFewSamples = errors.New("at least two samples are required")
)

// PollIntervalFor returns DefaultPollInterval for kernel GPIO value files and
// zero, meaning file events, for anything else.
func PollIntervalFor(valueFile string) time.Duration {
	if strings.HasPrefix(filepath.Clean(valueFile), SysfsGPIODir) {
		return DefaultPollInterval
	}

	return 0
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Settings may carry API keys.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills defaults for optional values.
//
//nolint:cyclop // One flat pass over every section reads better than helpers per field.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.HistoryLimit == 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}

	if cfg.Pump.Debounce <= 0 {
		cfg.Pump.Debounce = DefaultDebounce
	}

	if cfg.Pump.ValueFile == "" {
		cfg.Pump.ValueFile = fmt.Sprintf("%sgpio%d/value", SysfsGPIODir, cfg.Pump.Pin)
	}

	if cfg.Pump.PollInterval < 0 {
		return fmt.Errorf("invalid pump poll_interval %s", cfg.Pump.PollInterval)
	}

	if cfg.Pump.PollInterval == 0 {
		cfg.Pump.PollInterval = PollIntervalFor(cfg.Pump.ValueFile)
	}

	if cfg.Tank.Samples <= 0 {
		cfg.Tank.Samples = DefaultTankSamples
	}

	if cfg.Tank.Samples == 1 {
		return fmt.Errorf("tank samples: %w", errTooFewSamples)
	}

	if cfg.Tank.SampleInterval <= 0 {
		cfg.Tank.SampleInterval = DefaultSampleInterval
	}

	if cfg.Tank.Schedule == "" {
		cfg.Tank.Schedule = DefaultTankSchedule
	}

	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}

	if cfg.Server.StateFile == "" {
		cfg.Server.StateFile = DefaultStateFilename
	}

	if cfg.Server.AccessLogLevel == "" {
		cfg.Server.AccessLogLevel = DefaultAccessLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.Server.AccessLogLevel); !ok {
		return fmt.Errorf("invalid access log level %q", cfg.Server.AccessLogLevel)
	}

	if err := validateSinks(&cfg.Sinks); err != nil {
		return err
	}

	if err := validateWeather(cfg.Weather); err != nil {
		return err
	}

	for i := range cfg.Alarms {
		if err := validateAlarm(&cfg.Alarms[i]); err != nil {
			return fmt.Errorf("alarm #%d: %w", i, err)
		}
	}

	return nil
}

func validateSinks(s *Sinks) error {
	if s.ThingSpeak != nil && s.ThingSpeak.APIKey == "" {
		return fmt.Errorf("thingspeak api_key: %w", errMissingField)
	}

	if s.ThingSpeak != nil && s.ThingSpeak.BaseURL != "" {
		if _, err := url.ParseRequestURI(s.ThingSpeak.BaseURL); err != nil {
			return fmt.Errorf("invalid thingspeak base_url: %w", err)
		}
	}

	if s.Remote != nil {
		if err := validateHostPort(s.Remote.ServerAddress); err != nil {
			return fmt.Errorf("invalid remote server_addr: %w", err)
		}
	}

	if s.CloudWatch != nil && s.CloudWatch.Namespace == "" {
		return fmt.Errorf("cloudwatch namespace: %w", errMissingField)
	}

	if s.CloudWatch != nil && s.CloudWatch.MetricName == "" {
		s.CloudWatch.MetricName = "value"
	}

	if s.Mongo != nil && (s.Mongo.URI == "" || s.Mongo.Database == "" || s.Mongo.Collection == "") {
		return fmt.Errorf("mongo uri/database/collection: %w", errMissingField)
	}

	return nil
}

func validateAlarm(a *Alarm) error {
	switch a.Trigger {
	case TriggerLogged, TriggerGreater, TriggerLess:
	default:
		return fmt.Errorf("%w: %q", errUnknownTrigger, a.Trigger)
	}

	if a.Action == "" {
		a.Action = ActionLog
	}

	switch a.Action {
	case ActionLog:
	case ActionSNS:
		if a.TopicARN == "" {
			return fmt.Errorf("topic_arn: %w", errMissingField)
		}
	case ActionCommand:
		if len(a.Command) == 0 {
			return fmt.Errorf("command: %w", errMissingField)
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownAction, a.Action)
	}

	if a.Field < 0 {
		return fmt.Errorf("negative field %d", a.Field)
	}

	return nil
}

func validateWeather(w *Weather) error {
	if w == nil {
		return nil
	}

	if w.APIKey == "" {
		return fmt.Errorf("weather api_key: %w", errMissingField)
	}

	if w.LocationKey == "" {
		return fmt.Errorf("weather location_key: %w", errMissingField)
	}

	if w.BaseURL == "" {
		w.BaseURL = DefaultWeatherURL
	}

	if _, err := url.ParseRequestURI(w.BaseURL); err != nil {
		return fmt.Errorf("invalid weather base_url: %w", err)
	}

	if w.Schedule == "" {
		w.Schedule = DefaultWeatherSchedule
	}

	return nil
}

// validateHostPort checks the address syntax only; the host may not resolve yet.
func validateHostPort(address string) error {
	_, port, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}

	if _, err = strconv.ParseUint(port, 10, 16); err != nil {
		return fmt.Errorf("port %q: %w", port, err)
	}

	return nil
}
