package goquery

import (
	"net/url"
	"strings"

	"github.com/fwojciec/artex"
)

// FindAMPURL returns the AMP variant of pageURL. The page's
// <link rel="amphtml"> wins; otherwise "/amp" is appended to the path.
func FindAMPURL(rawHTML, pageURL string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", artex.Errorf(artex.EINVALID, "invalid page URL %q: %v", pageURL, err)
	}

	doc, err := parse(rawHTML)
	if err != nil {
		return "", err
	}
	if href, ok := doc.Find(`link[rel~="amphtml"]`).First().Attr("href"); ok {
		if href = strings.TrimSpace(href); href != "" {
			ref, err := url.Parse(href)
			if err == nil {
				return base.ResolveReference(ref).String(), nil
			}
		}
	}

	amp := *base
	amp.Fragment = ""
	amp.Path = strings.TrimSuffix(base.Path, "/") + "/amp"
	amp.RawPath = ""
	return amp.String(), nil
}
