package types

import "errors"

// ErrorKind names the constraint that failed during an add operation.
type ErrorKind string

const (
	ErrKindNone                  ErrorKind = ""
	ErrKindUnsupported           ErrorKind = "unsupported"
	ErrKindIncompatiblePlatform  ErrorKind = "incompatible-platform"
	ErrKindUnknownVersion        ErrorKind = "unknown-version"
	ErrKindNoCompatibleVersion   ErrorKind = "no-compatible-version"
	ErrKindAmbiguousLoader       ErrorKind = "ambiguous-loader"
	ErrKindLoaderNotOffered      ErrorKind = "loader-not-offered"
	ErrKindIncompatibleLoader    ErrorKind = "incompatible-loader"
	ErrKindNoInstallableArtifact ErrorKind = "no-installable-artifact"
	ErrKindHashMismatch          ErrorKind = "hash-mismatch"
)

// KindError attaches an ErrorKind to an underlying (errbuilder) error.
type KindError struct {
	Kind ErrorKind
	Err  error
}

func NewKindError(kind ErrorKind, err error) *KindError {
	return &KindError{Kind: kind, Err: err}
}

func (e *KindError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *KindError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind carried anywhere in err's chain, or ErrKindNone
// for transport, decoding and other I/O-class failures.
func KindOf(err error) ErrorKind {
	var kindErr *KindError
	if errors.As(err, &kindErr) {
		return kindErr.Kind
	}
	return ErrKindNone
}
