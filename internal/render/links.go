package render

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// absURL adds an https scheme to bare addresses like "github.com/jane".
func absURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// linkLabel shortens a URL to its registrable domain for display,
// e.g. "https://www.github.com/jane/quill" -> "github.com".
func linkLabel(raw string) string {
	candidate := absURL(raw)
	if candidate == "" {
		return ""
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Hostname() == "" {
		return raw
	}
	host := parsed.Hostname()
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}

func newLink(raw string) *Link {
	href := absURL(raw)
	if href == "" {
		return nil
	}
	return &Link{Href: href, Label: linkLabel(raw)}
}
