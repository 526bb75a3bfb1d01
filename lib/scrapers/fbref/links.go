package fbref

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
)

// playerPath is a parsed /players/<id>/<slug> link.
type playerPath struct {
	prefix string
	id     string
	slug   string
}

func (p playerPath) statsPath() string {
	return p.prefix + "players/" + p.id + "/" + p.slug + "-Stats"
}

func parsePlayerPath(href string) (playerPath, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return playerPath{}, false
	}
	idx := strings.Index(u.Path, "/players/")
	if idx < 0 {
		return playerPath{}, false
	}
	rest := strings.Split(u.Path[idx+len("/players/"):], "/")
	if len(rest) < 2 || rest[0] == "" || rest[1] == "" {
		return playerPath{}, false
	}
	return playerPath{
		prefix: u.Path[:idx+1],
		id:     rest[0],
		slug:   rest[1],
	}, true
}

func normalizeUrl(base *url.URL, path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return path
	}
	return purell.NormalizeURL(
		base.ResolveReference(ref),
		purell.FlagsSafe|
			purell.FlagRemoveDuplicateSlashes|
			purell.FlagRemoveFragment,
	)
}
