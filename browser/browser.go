// Package browser resolves site names to URLs and opens them on the
// host system.
package browser

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// siteMap maps well-known site names to their canonical URLs. Anything
// else falls back to https://www.<name>.com with spaces stripped.
var siteMap = map[string]string{
	"google":    "https://www.google.com",
	"youtube":   "https://www.youtube.com",
	"facebook":  "https://www.facebook.com",
	"twitter":   "https://www.twitter.com",
	"github":    "https://www.github.com",
	"amazon":    "https://www.amazon.com",
	"wikipedia": "https://www.wikipedia.org",
	"reddit":    "https://www.reddit.com",
}

var sitePattern = regexp.MustCompile(`(?i)\b(open|go to|visit|navigate to)\s+(.+?)\s*(website|site|page)?\s*$`)

// ExtractSite pulls the requested site name out of an utterance.
func ExtractSite(query string) (string, bool) {
	m := sitePattern.FindStringSubmatch(query)
	if m == nil {
		return "", false
	}
	site := strings.TrimSpace(m[2])
	if site == "" {
		return "", false
	}
	return site, true
}

// Resolve maps a site name to a URL. Unknown names get an https://www.
// prefix with internal spaces removed.
func Resolve(site string) string {
	site = strings.TrimSpace(site)
	if u, ok := siteMap[strings.ToLower(site)]; ok {
		return u
	}
	if !strings.HasPrefix(site, "http://") && !strings.HasPrefix(site, "https://") && !strings.HasPrefix(site, "www.") {
		site = "https://www." + site
	}
	return strings.ReplaceAll(site, " ", "")
}

// SearchURL builds a web search URL for a term.
func SearchURL(term string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(term)
}

// Opener opens a URL for the user.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// ExecOpener shells out to the platform's opener command.
type ExecOpener struct {
	log *logrus.Entry
}

// NewExecOpener creates an opener that launches the system browser.
func NewExecOpener(log *logrus.Logger) *ExecOpener {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ExecOpener{log: log.WithField("component", "browser")}
}

// Open launches the URL in the default browser.
func (o *ExecOpener) Open(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		o.log.WithField("url", url).WithError(err).Warn("failed to open browser")
		return fmt.Errorf("open %s: %w", url, err)
	}
	o.log.WithField("url", url).Debug("opened browser")
	return nil
}

// LogOpener records open requests without launching anything. Used for
// headless deployments where the client owns the browser.
type LogOpener struct {
	log *logrus.Entry
}

// NewLogOpener creates a no-launch opener.
func NewLogOpener(log *logrus.Logger) *LogOpener {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogOpener{log: log.WithField("component", "browser")}
}

// Open logs the URL and reports success.
func (o *LogOpener) Open(_ context.Context, url string) error {
	o.log.WithField("url", url).Info("open requested")
	return nil
}
