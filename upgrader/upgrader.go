package upgrader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/ethrpc/utils"
)

type Upgrader struct {
	client         *http.Client
	log            utils.StructuredLogger
	apiURL         string
	currentVersion *semver.Version
	releasesURL    string
	delay          time.Duration
}

func NewUpgrader(version *semver.Version, apiURL, releasesURL string, delay time.Duration, log utils.StructuredLogger) *Upgrader {
	return &Upgrader{
		currentVersion: version,
		client:         &http.Client{},
		log:            log,
		apiURL:         apiURL,
		releasesURL:    releasesURL,
		delay:          delay,
	}
}

func (u *Upgrader) WithClient(client *http.Client) *Upgrader {
	u.client = client
	return u
}

func (u *Upgrader) WithLog(log utils.StructuredLogger) *Upgrader {
	u.log = log
	return u
}

type Release struct {
	Version    *semver.Version `json:"tag_name"`
	Draft      bool            `json:"draft"`
	PreRelease bool            `json:"prerelease"`
}

// Latest fetches the most recent release from the configured API URL.
func (u *Upgrader) Latest(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.apiURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch latest release: %s", resp.Status)
	}

	latest := new(Release)
	if err := json.NewDecoder(resp.Body).Decode(latest); err != nil {
		return nil, fmt.Errorf("unmarshal latest release: %w", err)
	}
	if latest.Version == nil {
		return nil, errors.New("latest release has no tag name")
	}
	return latest, nil
}

// Check fetches the latest release and reports whether it is newer than
// the running version.
func (u *Upgrader) Check(ctx context.Context) (*Release, bool, error) {
	latest, err := u.Latest(ctx)
	if err != nil {
		return nil, false, err
	}
	return latest, needsUpdate(*u.currentVersion, *latest.Version), nil
}

// Run checks for a new release every delay and logs a warning with the
// release link when one is found. It returns when the context is
// cancelled.
func (u *Upgrader) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Millisecond) // Don't wait the first time.
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			latest, newer, err := u.Check(ctx)
			if err != nil {
				u.log.Debugw("Failed to fetch latest release", "err", err)
			} else if newer {
				u.log.Warnw("New release is available.",
					"currentVersion", u.currentVersion.String(),
					"newVersion", latest.Version.String(),
					"link", u.releasesURL,
				)
			} else {
				u.log.Debugw("Application is up-to-date.")
			}
			timer.Reset(u.delay)
		}
	}
}

// needsUpdate compares major, minor, and patch versions of the currentVersion and latestVersion.
// It returns true if the latestVersion is greater than the currentVersion and false otherwise.
//
// It doesn't consider:
//   - metadata, such as commit hashes.
//   - rc releases.
func needsUpdate(currentVersion, latestVersion semver.Version) bool {
	if currentVersion.Major() == latestVersion.Major() {
		if currentVersion.Minor() < latestVersion.Minor() {
			return true
		} else if currentVersion.Minor() == latestVersion.Minor() {
			if currentVersion.Patch() < latestVersion.Patch() {
				return true
			}
		}
	} else if currentVersion.Major() < latestVersion.Major() {
		return true
	}
	return false
}
