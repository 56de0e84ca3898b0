//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// DetectSourceID returns the id remote sinks attach to events.
// A configured instance id wins; otherwise the hostname is combined with a
// random suffix so two watchers on one host stay distinguishable.
func DetectSourceID(instanceID string) (string, error) {
	if instanceID != "" {
		return instanceID, nil
	}

	hostname, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("hostname: %w", err)
	}

	return hostname + "-" + uuid.NewString()[:8], nil
}
