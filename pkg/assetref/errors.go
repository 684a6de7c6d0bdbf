package assetref

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies the outcome of resolving a reference.
type Kind int

const (
	// KindOK means the reference resolved to an existing project file.
	KindOK Kind = iota
	// KindInvalidLocation means the reference was empty, or could not be
	// combined with its base.
	KindInvalidLocation
	// KindInvalidScheme means the reference is absolute with a scheme other
	// than [ProjectScheme].
	KindInvalidScheme
	// KindInvalidProjectPath means the reference resolved to an empty path, or
	// to a path with no file behind it.
	KindInvalidProjectPath
)

var (
	ErrInvalidLocation    = errors.New("invalid URI location")
	ErrInvalidScheme      = errors.New("invalid URI scheme")
	ErrInvalidProjectPath = errors.New("invalid project asset path")

	ErrUnknownKind = errors.New("unknown kind")
)

var kindNames = map[Kind]string{
	KindOK:                 "ok",
	KindInvalidLocation:    "invalid_location",
	KindInvalidScheme:      "invalid_scheme",
	KindInvalidProjectPath: "invalid_project_path",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Kind) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	for kind, name := range kindNames {
		if name == s {
			*k = kind

			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownKind, string(text))
}

// Err returns the sentinel error for k, or nil for [KindOK].
func (k Kind) Err() error {
	switch k {
	case KindOK:
		return nil
	case KindInvalidLocation:
		return ErrInvalidLocation
	case KindInvalidScheme:
		return ErrInvalidScheme
	case KindInvalidProjectPath:
		return ErrInvalidProjectPath
	}

	return ErrUnknownKind
}

// ValidationError is returned for every reference that does not resolve.
//
// Message carries the diagnostic for the kind: "Empty URI" or the reference
// base for [KindInvalidLocation], the offending scheme for
// [KindInvalidScheme], and the candidate path for [KindInvalidProjectPath].
type ValidationError struct {
	Message string
	Kind    Kind
}

func (e *ValidationError) Error() string {
	prefix := e.Kind.String()
	if sentinel := e.Kind.Err(); sentinel != nil {
		prefix = sentinel.Error()
	}

	if e.Message == "" {
		return prefix
	}

	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Is reports whether target is the sentinel for e's kind.
func (e *ValidationError) Is(target error) bool {
	return target != nil && target == e.Kind.Err()
}

func newValidationError(kind Kind, msg string) *ValidationError {
	return &ValidationError{Kind: kind, Message: msg}
}

// KindOf classifies an error returned by [Resolver.Resolve]. A nil error is
// [KindOK]. Errors that are not a [*ValidationError] are treated as
// [KindInvalidLocation].
func KindOf(err error) Kind {
	if err == nil {
		return KindOK
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Kind
	}

	return KindInvalidLocation
}
