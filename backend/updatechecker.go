package backend

import (
	"context"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

type UpdateChecker struct {
	OnUpdatedVersionFound func()

	versionTagFound  string
	latestReleaseURL string
	appVersionTag    string
	lastCheckedTag   *string
	client           *retryablehttp.Client
}

func NewUpdateChecker(appVersionTag, latestReleaseURL string, lastCheckedTag *string) UpdateChecker {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 2 * time.Second
	client.HTTPClient.Timeout = 15 * time.Second
	client.Logger = nil
	return UpdateChecker{
		appVersionTag:    appVersionTag,
		latestReleaseURL: latestReleaseURL,
		lastCheckedTag:   lastCheckedTag,
		client:           client,
	}
}

func (u *UpdateChecker) Start(ctx context.Context, interval time.Duration) {
	go func() {
		u.checkForUpdate() // check once at startup
		t := time.NewTicker(interval)
		for {
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-t.C:
				u.checkForUpdate()
			}
		}
	}()
}

func (u *UpdateChecker) VersionTagFound() string {
	return u.versionTagFound
}

func (u *UpdateChecker) LatestReleaseURL() *url.URL {
	url, _ := url.Parse(u.latestReleaseURL)
	return url
}

func (u *UpdateChecker) checkForUpdate() {
	t := u.CheckLatestVersionTag()
	if t != "" && t != *u.lastCheckedTag {
		u.versionTagFound = t
		if u.OnUpdatedVersionFound != nil {
			u.OnUpdatedVersionFound()
		}
	}
}

// CheckLatestVersionTag follows the latest-release redirect and
// returns the tag it lands on, or "" on failure.
func (u *UpdateChecker) CheckLatestVersionTag() string {
	resp, err := u.client.Head(u.latestReleaseURL)
	if err != nil {
		log.Printf("failed to check for newest version: %s", err.Error())
		return ""
	}
	resp.Body.Close()
	return tagFromReleaseURL(resp.Request.URL.String())
}

func tagFromReleaseURL(url string) string {
	url = strings.TrimSuffix(url, "/")
	idx := strings.LastIndex(url, "/")
	if idx < 0 || idx >= len(url)-1 {
		return ""
	}
	return url[idx+1:]
}
