package notify

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/oshokin/sump-watch/internal/domain/alarm"
	"github.com/oshokin/sump-watch/internal/logger"
)

// AlarmEnv is the environment variable carrying the alarm name to the command.
const AlarmEnv = "SUMP_WATCH_ALARM"

// errEmptyCommand is returned when no program is configured.
var errEmptyCommand = errors.New("command is empty")

// StartCommand starts argv with the alarm name in the environment and does not
// wait for it: a buzzer or relay script must not stall the event chain.
// The process is reaped in the background.
func StartCommand(ctx context.Context, name string, argv []string) error {
	if len(argv) == 0 {
		return errEmptyCommand
	}

	//nolint:gosec // The command line comes from the operator's own config file.
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), AlarmEnv+"="+name)

	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			logger.WarnKV(ctx, "Alarm command exited with error", "alarm", name, "error", err)
		}
	}()

	return nil
}

// Command returns an action starting argv when the alarm fires.
func Command(ctx context.Context, name string, argv []string) alarm.ActionFunc {
	return func() {
		if err := StartCommand(ctx, name, argv); err != nil {
			logger.ErrorKV(ctx, "Alarm command failed to start", "alarm", name, "error", err)
		}
	}
}
