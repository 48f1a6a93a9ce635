package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseBinding Phase = "binding" // contract marker resolution
	PhaseResolve Phase = "resolve" // type graph walk
	PhaseLoad    Phase = "load"    // universe loading
	PhaseParse   Phase = "parse"   // type reference syntax
	PhaseEncode  Phase = "encode"  // catalogue encoding
	PhaseConfig  Phase = "config"  // driver configuration
)

// Kind categorizes the error
type Kind string

const (
	KindMissingMarker          Kind = "missing_marker"
	KindMissingKey             Kind = "missing_key"
	KindInvalidKey             Kind = "invalid_key"
	KindKeyKindMismatch        Kind = "key_kind_mismatch"
	KindDuplicateKey           Kind = "duplicate_key"
	KindDuplicateMember        Kind = "duplicate_member"
	KindParameterNotFound      Kind = "parameter_not_found"
	KindParameterMismatch      Kind = "parameter_mismatch"
	KindAmbiguousParameter     Kind = "ambiguous_parameter"
	KindAmbiguousConstructor   Kind = "ambiguous_constructor"
	KindNoConstructor          Kind = "no_constructor"
	KindUnsupportedRank        Kind = "unsupported_rank"
	KindDuplicateDiscriminator Kind = "duplicate_discriminator"
	KindInvalidUnion           Kind = "invalid_union"
	KindNotFound               Kind = "not_found"
	KindDuplicate              Kind = "duplicate"
	KindInvalidInput           Kind = "invalid_input"
	KindInvalidData            Kind = "invalid_data"
	KindUnsupported            Kind = "unsupported"
)

var (
	// ResolutionFailure matches every error raised while walking the type graph.
	ResolutionFailure = &Error{Phase: PhaseResolve}

	// BindingConfigurationFailure matches every error raised while resolving
	// the contract markers.
	BindingConfigurationFailure = &Error{Phase: PhaseBinding}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string
	Member string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
		if e.Member != "" {
			b.WriteString(", member ")
			b.WriteString(e.Member)
		}
	} else if e.Member != "" {
		b.WriteString(": member ")
		b.WriteString(e.Member)
	}

	if e.Detail != "" {
		if e.Type != "" || e.Member != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target without a Kind
// matches every error of its Phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Phase != t.Phase {
		return false
	}
	return t.Kind == "" || e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the document path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the fully-qualified offending type name
func (b *Builder) Type(name string) *Builder {
	b.err.Type = name
	return b
}

// Member sets the offending member or parameter name
func (b *Builder) Member(name string) *Builder {
	b.err.Member = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Resolution creates a resolve-phase error for the given type and member
func Resolution(kind Kind, typeName, member, detail string, args ...any) *Error {
	return New(PhaseResolve, kind).Type(typeName).Member(member).Detail(detail, args...).Build()
}

// MissingMarker creates a binding error for a contract marker absent from the compilation
func MissingMarker(name string) *Error {
	return &Error{
		Phase:  PhaseBinding,
		Kind:   KindMissingMarker,
		Type:   name,
		Detail: "required contract marker is not declared in the compilation",
	}
}

// NotFound creates a not found error
func NotFound(phase Phase, path []string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Path:   path,
		Detail: fmt.Sprintf("%s not found", what),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// IsResolutionFailure reports whether err is, or wraps, a resolve-phase error
func IsResolutionFailure(err error) bool {
	return errors.Is(err, ResolutionFailure)
}

// IsBindingConfigurationFailure reports whether err is, or wraps, a binding-phase error
func IsBindingConfigurationFailure(err error) bool {
	return errors.Is(err, BindingConfigurationFailure)
}

// KindOf returns the Kind of the first *Error in err's chain, or "" when there is none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
