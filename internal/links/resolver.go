package links

import (
	"net/url"
	"path"
	"strings"

	"github.com/bayat/go-standards/pkg/interfaces"
)

// Classify splits a raw link target into path and fragment and assigns the
// resolution kind. Targets carrying a URL scheme (http, https, mailto, and
// any other protocol) are classified external and never resolved against the
// filesystem, matching the corpus validation contract.
func Classify(link interfaces.Link) interfaces.Link {
	raw := strings.TrimSpace(link.Target)
	link.Path = ""
	link.Fragment = ""

	if raw == "" {
		link.Kind = interfaces.LinkExternal
		return link
	}

	if strings.HasPrefix(raw, "#") {
		link.Kind = interfaces.LinkAnchor
		link.Fragment = strings.TrimPrefix(raw, "#")
		return link
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		// Unparseable targets fall back to literal path resolution.
		link.Kind = interfaces.LinkRelative
		link.Path = splitFragment(&link, raw)
		return link
	}

	if parsed.Scheme != "" {
		link.Kind = interfaces.LinkExternal
		return link
	}

	link.Fragment = parsed.Fragment
	target := parsed.Path
	if target == "" {
		link.Kind = interfaces.LinkAnchor
		return link
	}

	if strings.HasPrefix(target, "/") {
		link.Kind = interfaces.LinkRootAbsolute
		link.Path = path.Clean(strings.TrimPrefix(target, "/"))
		return link
	}

	link.Kind = interfaces.LinkRelative
	link.Path = target
	return link
}

func splitFragment(link *interfaces.Link, raw string) string {
	if idx := strings.IndexByte(raw, '#'); idx >= 0 {
		link.Fragment = raw[idx+1:]
		return raw[:idx]
	}
	return raw
}

// resolveCandidates lists the corpus-relative paths a target may resolve to,
// in precedence order: the document's own directory, then the corpus root.
// Root-absolute targets resolve against the root only.
func resolveCandidates(link interfaces.Link, documentPath string) []string {
	if link.Kind == interfaces.LinkRootAbsolute {
		return []string{link.Path}
	}

	docDir := path.Dir(documentPath)
	fromDoc := path.Clean(path.Join(docDir, link.Path))
	fromRoot := path.Clean(link.Path)

	if fromDoc == fromRoot {
		return []string{fromDoc}
	}
	return []string{fromDoc, fromRoot}
}

// escapesRoot reports whether a cleaned candidate path climbs out of the
// corpus root; such targets can never be validated against the corpus fs.
func escapesRoot(candidate string) bool {
	return candidate == ".." || strings.HasPrefix(candidate, "../")
}
