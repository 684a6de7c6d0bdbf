package assetref

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ProjectScheme is the synthetic scheme for paths rooted at the project's
// top-level directory. It has no authority component.
const ProjectScheme = "project"

// projectRoot is project:///. It is never mutated; use [ProjectRoot] to get
// a copy.
var projectRoot = url.URL{Scheme: ProjectScheme, Path: "/"}

// ProjectRoot returns a copy of the project root URL, "project:///".
func ProjectRoot() *url.URL {
	u := projectRoot

	return &u
}

func isProjectScheme(scheme string) bool {
	return strings.EqualFold(scheme, ProjectScheme)
}

var errNetworkPath = errors.New("reference has an authority")

// reference is the result of parsing a raw reference string. It is exactly
// one of [absoluteRef], [relativeRef] or [malformedRef].
type reference interface {
	isReference()
}

// absoluteRef carries its own scheme.
type absoluteRef struct {
	url *url.URL
}

// relativeRef must be resolved against a base.
type relativeRef struct {
	url *url.URL
}

// malformedRef could not be parsed at all.
type malformedRef struct {
	err error
}

func (absoluteRef) isReference()  {}
func (relativeRef) isReference()  {}
func (malformedRef) isReference() {}

func parseReference(raw string) reference {
	if u, err := url.Parse(raw); err == nil && u.IsAbs() {
		return absoluteRef{url: u}
	}

	u, err := url.Parse(toSlash(raw))
	if err != nil {
		return malformedRef{err: err}
	}

	if u.IsAbs() {
		return absoluteRef{url: u}
	}

	// A network-path reference such as `\\server\share` names a host, not a
	// file in the project.
	if u.Host != "" || u.User != nil {
		return malformedRef{err: fmt.Errorf("%w: %s", errNetworkPath, u.Host)}
	}

	return relativeRef{url: u}
}

// rootRelative builds an absolute project URL from a reference starting with
// "/". The reference is used verbatim as the path, with dot segments
// collapsed.
func rootRelative(raw string) *url.URL {
	return projectRoot.ResolveReference(&url.URL{Scheme: ProjectScheme, Path: raw})
}

// resolveRelative resolves ref against base, where base is itself resolved
// against the project root.
func resolveRelative(base string, ref *url.URL) (*url.URL, error) {
	baseURL, err := url.Parse(toSlash(base))
	if err != nil {
		return nil, err
	}

	return projectRoot.ResolveReference(baseURL).ResolveReference(ref), nil
}

// localPath returns the decoded path component of u, cleaned and clamped at
// the project root, without its leading separator. For opaque forms such as
// "project:Assets/a.uss", the opaque part is used. The root itself is "".
func localPath(u *url.URL) (string, error) {
	p := u.Path
	if u.Opaque != "" {
		op, err := url.PathUnescape(u.Opaque)
		if err != nil {
			return "", err
		}

		p = op
	}

	// Decoding can expose dot segments ("%2e%2e") and doubled separators
	// that URL resolution left alone.
	return strings.TrimPrefix(path.Clean("/"+p), "/"), nil
}

// toSlash treats backslashes as path separators.
func toSlash(s string) string {
	return strings.ReplaceAll(s, `\`, "/")
}
