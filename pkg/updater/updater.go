// Package updater asks the release feed whether a newer teal exists.
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-version"
)

// DefaultURL is the latest-release endpoint of the teal repository.
const DefaultURL = "https://api.github.com/repos/kraitsura/teal/releases/latest"

// Release is the part of a release record we read.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Checker queries a release endpoint.
type Checker struct {
	URL    string
	Client *http.Client
}

// NewChecker returns a checker for DefaultURL with a short timeout.
func NewChecker() *Checker {
	return &Checker{
		URL:    DefaultURL,
		Client: &http.Client{Timeout: 2 * time.Second},
	}
}

// Latest fetches the newest release.
func (c *Checker) Latest(ctx context.Context) (Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return Release{}, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return Release{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Release{}, fmt.Errorf("release feed returned status: %s", resp.Status)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return Release{}, fmt.Errorf("decode release: %w", err)
	}
	return rel, nil
}

// Check reports the latest release and whether it is newer than current.
func (c *Checker) Check(ctx context.Context, current string) (Release, bool, error) {
	rel, err := c.Latest(ctx)
	if err != nil {
		return Release{}, false, err
	}
	newer, err := Newer(rel.TagName, current)
	if err != nil {
		return rel, false, err
	}
	return rel, newer, nil
}

// Newer reports whether tag is a later version than current. A leading "v"
// is accepted on both.
func Newer(tag, current string) (bool, error) {
	latest, err := version.NewVersion(tag)
	if err != nil {
		return false, fmt.Errorf("release tag %q: %w", tag, err)
	}
	cur, err := version.NewVersion(current)
	if err != nil {
		return false, fmt.Errorf("current version %q: %w", current, err)
	}
	return latest.GreaterThan(cur), nil
}
