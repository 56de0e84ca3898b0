//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/oshokin/sump-watch/internal/config"
	"github.com/oshokin/sump-watch/internal/domain/alarm"
	"github.com/oshokin/sump-watch/internal/domain/event"
	"github.com/oshokin/sump-watch/internal/notify"
)

var (
	// errNoSNSClient is returned when an SNS alarm is configured without a client.
	errNoSNSClient = errors.New("sns client is required for sns alarms")
	// errUnsupportedAlarm is returned for trigger or action kinds not known here.
	errUnsupportedAlarm = errors.New("unsupported alarm")
)

// NeedsSNS reports whether any alarm publishes to SNS.
func NeedsSNS(alarms []config.Alarm) bool {
	for _, a := range alarms {
		if a.Action == config.ActionSNS {
			return true
		}
	}

	return false
}

// NewSNSClient creates the SNS client used by SNS alarms.
func NewSNSClient(ctx context.Context, region string) (*sns.Client, error) {
	cfg, err := LoadAWSConfig(ctx, region)
	if err != nil {
		return nil, err
	}

	return sns.NewFromConfig(cfg), nil
}

// NewClock creates an alarm clock with the configured history limit and alarms.
// seed pre-loads the history without firing anything.
func NewClock(
	ctx context.Context,
	cfg *config.Config,
	snsAPI notify.SNSAPI,
	seed ...event.Event,
) (*alarm.Clock, error) {
	clock := alarm.NewClock(alarm.WithHistoryLimit(cfg.HistoryLimit), alarm.WithSeed(seed...))

	if err := AddAlarms(ctx, clock, cfg.Alarms, snsAPI, cfg.Timeout); err != nil {
		return nil, err
	}

	return clock, nil
}

// AddAlarms turns configured alarms into bindings on clock, in config order.
func AddAlarms(
	ctx context.Context,
	clock *alarm.Clock,
	alarms []config.Alarm,
	snsAPI notify.SNSAPI,
	timeout time.Duration,
) error {
	for i, a := range alarms {
		trigger, err := buildTrigger(a)
		if err != nil {
			return fmt.Errorf("alarm #%d: %w", i, err)
		}

		name := a.Name
		if name == "" {
			name = fmt.Sprintf("alarm-%d", i+1)
		}

		describe := lastEvent(clock)

		var action alarm.Action

		switch a.Action {
		case config.ActionLog, "":
			action = notify.Log(ctx, name, describe)
		case config.ActionSNS:
			if snsAPI == nil {
				return fmt.Errorf("alarm %s: %w", name, errNoSNSClient)
			}

			action = notify.NewSNS(snsAPI, a.TopicARN, timeout).Action(ctx, name, describe)
		case config.ActionCommand:
			action = notify.Command(ctx, name, a.Command)
		default:
			return fmt.Errorf("alarm %s: %w action %q", name, errUnsupportedAlarm, a.Action)
		}

		clock.AddBinding(alarm.Binding{
			Name:    name,
			Trigger: trigger,
			Action:  action,
		})
	}

	return nil
}

//nolint:ireturn // Triggers are used through the interface.
func buildTrigger(a config.Alarm) (alarm.Trigger, error) {
	switch a.Trigger {
	case config.TriggerLogged:
		return alarm.IsEventLogged(event.New(a.Value)), nil
	case config.TriggerGreater:
		return alarm.IsLastFieldGreater(a.Field, a.Value), nil
	case config.TriggerLess:
		return alarm.IsLastFieldLess(a.Field, a.Value), nil
	default:
		return nil, fmt.Errorf("%w trigger %q", errUnsupportedAlarm, a.Trigger)
	}
}

// lastEvent describes the event that made an alarm fire. Actions run right
// after the event is appended, so it is the newest one in the history.
func lastEvent(clock *alarm.Clock) func() string {
	return func() string {
		last, ok := clock.History().Last()
		if !ok {
			return "no events logged"
		}

		return "last event " + last.String()
	}
}

// LocalLoggers registers the built sinks and, when alarms are configured, an
// alarm clock on one fan-out, in that order.
func LocalLoggers(ctx context.Context, cfg *config.Config, sinks *Sinks) (*event.Fanout, error) {
	loggers := new(event.Fanout)

	for _, l := range sinks.Loggers() {
		loggers.Register(l)
	}

	if len(cfg.Alarms) == 0 {
		return loggers, nil
	}

	var snsAPI notify.SNSAPI

	if NeedsSNS(cfg.Alarms) {
		client, err := NewSNSClient(ctx, "")
		if err != nil {
			return nil, err
		}

		snsAPI = client
	}

	clock, err := NewClock(ctx, cfg, snsAPI)
	if err != nil {
		return nil, err
	}

	loggers.Register(clock)

	return loggers, nil
}
