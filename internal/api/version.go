package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Masterminds/semver/v3"
)

// supportedServerRange is the control layer version range this client
// is tested against. Older servers predate the cursor listing APIs.
const supportedServerRange = ">= 0.19.0, < 2.0.0"

// VersionInfo is the control layer's version report.
type VersionInfo struct {
	Version string `json:"version"`
}

// ServerVersion fetches the control layer's reported version.
func (c *Client) ServerVersion(ctx context.Context) (*VersionInfo, error) {
	var info VersionInfo
	if err := c.get(ctx, "/version", url.Values{}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// CheckCompatibility reports whether the given server version falls in
// the supported range. An unparseable version is an error; a version
// outside the range returns ok=false with a descriptive reason so
// callers can warn without failing.
func CheckCompatibility(version string) (bool, string, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, "", fmt.Errorf("parsing server version %q: %w", version, err)
	}

	constraint, err := semver.NewConstraint(supportedServerRange)
	if err != nil {
		return false, "", fmt.Errorf("parsing version constraint: %w", err)
	}

	if !constraint.Check(v) {
		reason := fmt.Sprintf(
			"server version %s is outside the supported range %s; listings may misbehave",
			version, supportedServerRange,
		)
		return false, reason, nil
	}
	return true, "", nil
}
