package assetref

import (
	"errors"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/spf13/afero"
)

// EmptyURIMessage is the message for an empty reference.
const EmptyURIMessage = "Empty URI"

// ProjectPath is a resolved, project-relative path to an existing file. It
// uses forward slashes and never starts with a separator.
type ProjectPath string

// String returns the path as a string.
func (p ProjectPath) String() string {
	return string(p)
}

// URL returns the absolute project URL for p, e.g. "project:///Assets/a.uss".
func (p ProjectPath) URL() *url.URL {
	u := ProjectRoot()
	u.Path += string(p)

	return u
}

// OSPath returns p joined to root using the OS path separator.
func (p ProjectPath) OSPath(root string) string {
	return filepath.Join(root, filepath.FromSlash(string(p)))
}

// Outcome is a flat record of a single resolution.
type Outcome struct {
	Base    string `json:"base"              yaml:"base"`
	Ref     string `json:"ref"               yaml:"ref"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Path    string `json:"path,omitempty"    yaml:"path,omitempty"`
	Kind    Kind   `json:"kind"              yaml:"kind"`
}

// OK reports whether the reference resolved.
func (o Outcome) OK() bool {
	return o.Kind == KindOK
}

// Err returns the [*ValidationError] for o, or nil if o is OK.
func (o Outcome) Err() error {
	if o.OK() {
		return nil
	}

	return newValidationError(o.Kind, o.Message)
}

// Resolver resolves asset references. It holds no mutable state and is safe
// for concurrent use.
type Resolver struct {
	exists Exister
	logger *slog.Logger
}

// Option configures a [Resolver].
type Option func(*Resolver)

// WithExister sets the existence check. The default checks the OS file
// system relative to the current working directory.
func WithExister(e Exister) Option {
	return func(r *Resolver) {
		r.exists = e
	}
}

// WithLogger sets the logger. The default is [slog.Default] at call time.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// New creates a new [Resolver].
func New(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}

	if r.exists == nil {
		r.exists = NewFSExister(afero.NewOsFs())
	}

	return r
}

// Resolve resolves raw, a reference found in the file at base, to an
// existing project-relative path.
//
// A raw reference starting with "/" is relative to the project root. A raw
// reference with a scheme must use [ProjectScheme]. Anything else is
// resolved relative to base, which is itself taken relative to the project
// root. On failure the error is a [*ValidationError].
func (r *Resolver) Resolve(base, raw string) (ProjectPath, error) {
	p, err := r.resolve(base, raw)
	if err != nil {
		r.log().Debug("reject asset reference",
			slog.String("base", base),
			slog.String("ref", raw),
			slog.String("kind", KindOf(err).String()),
			slog.Any("err", err),
		)

		return "", err
	}

	r.log().Debug("resolve asset reference",
		slog.String("base", base),
		slog.String("ref", raw),
		slog.String("path", p.String()),
	)

	return p, nil
}

// Validate resolves raw like [Resolver.Resolve] and returns the result as
// an [Outcome].
func (r *Resolver) Validate(base, raw string) Outcome {
	o := Outcome{Base: base, Ref: raw}

	p, err := r.Resolve(base, raw)
	o.Kind = KindOf(err)
	o.Path = p.String()

	var verr *ValidationError
	if errors.As(err, &verr) {
		o.Message = verr.Message
	}

	return o
}

func (r *Resolver) resolve(base, raw string) (ProjectPath, error) {
	if raw == "" {
		return "", newValidationError(KindInvalidLocation, EmptyURIMessage)
	}

	var abs *url.URL

	if raw[0] == '/' {
		abs = rootRelative(raw)
	} else {
		switch ref := parseReference(raw).(type) {
		case absoluteRef:
			if !isProjectScheme(ref.url.Scheme) {
				return "", newValidationError(KindInvalidScheme, ref.url.Scheme)
			}

			abs = projectRoot.ResolveReference(ref.url)

		case relativeRef:
			u, err := resolveRelative(base, ref.url)
			if err != nil {
				return "", newValidationError(KindInvalidLocation, base)
			}

			// A base with a scheme of its own can take the result elsewhere.
			if !isProjectScheme(u.Scheme) {
				return "", newValidationError(KindInvalidScheme, u.Scheme)
			}

			abs = u

		default: // malformedRef
			return "", newValidationError(KindInvalidLocation, base)
		}
	}

	candidate, err := localPath(abs)
	if err != nil {
		return "", newValidationError(KindInvalidLocation, raw)
	}

	if candidate == "" || !r.exists.Exists(candidate) {
		return "", newValidationError(KindInvalidProjectPath, candidate)
	}

	return ProjectPath(candidate), nil
}

func (r *Resolver) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}

	return slog.Default()
}
