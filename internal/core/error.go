package core

import (
	"errors"
	"fmt"
)

var (
	ErrMissingScript          = errors.New("missing script section")
	ErrDuplicateSection       = errors.New("duplicate section")
	ErrUnterminatedSection    = errors.New("unterminated section")
	ErrUnsupportedStyleLang   = errors.New("unsupported style language")
	ErrInvalidExtension       = errors.New("invalid component extension")
	ErrMissingSetting         = errors.New("missing required setting")
	ErrInvalidSetting         = errors.New("invalid setting")
	ErrNoDefaultExport        = errors.New("no default export")
	ErrMultipleDefaultExports = errors.New("multiple default exports")
	ErrUnknownExportShape     = errors.New("unknown default export shape")
	ErrTemplate               = errors.New("template compilation failed")
	ErrStyle                  = errors.New("style compilation failed")
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindStructural
	KindCompiler
	KindRewrite
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStructural:
		return "structural"
	case KindCompiler:
		return "compiler"
	case KindRewrite:
		return "rewrite"
	default:
		return "unknown"
	}
}

// BuildError is a fatal failure of one document build. Its message is the
// wrapped error's message so delegated compiler errors surface verbatim.
type BuildError struct {
	Kind     ErrorKind
	Document string
	Err      error
}

func (e *BuildError) Error() string {
	return e.Err.Error()
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func NewBuildError(kind ErrorKind, document string, err error) *BuildError {
	return &BuildError{Kind: kind, Document: document, Err: err}
}

// KindOf returns the kind of the first BuildError in err's chain.
func KindOf(err error) ErrorKind {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Kind
	}
	return 0
}

// messageError keeps a fixed user facing message while still matching a
// sentinel through errors.Is.
type messageError struct {
	msg      string
	sentinel error
}

func (e *messageError) Error() string { return e.msg }

func (e *messageError) Unwrap() error { return e.sentinel }

func MissingScriptError(document string) error {
	return &messageError{
		msg:      fmt.Sprintf("vuejs: target component '%s' must have a <script> section", document),
		sentinel: ErrMissingScript,
	}
}

func UnsupportedStyleLangError(document, lang string) error {
	return &messageError{
		msg:      fmt.Sprintf("vuejs: target '%s' requires unsupported <style> lang attribute '%s'", document, lang),
		sentinel: ErrUnsupportedStyleLang,
	}
}

func InvalidExtensionError(document string) error {
	return &messageError{
		msg:      fmt.Sprintf("vuejs: target '%s' must have %s extension", document, ComponentSuffix),
		sentinel: ErrInvalidExtension,
	}
}

// SettingsError names the setting that failed validation.
type SettingsError struct {
	Key    string
	Reason string
	Err    error
}

func (e *SettingsError) Error() string {
	if errors.Is(e.Err, ErrMissingSetting) {
		return fmt.Sprintf("vuejs: missing required option '%s'", e.Key)
	}
	if e.Reason != "" {
		return fmt.Sprintf("vuejs: invalid value for plugin setting '%s': %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("vuejs: invalid value for plugin setting '%s'", e.Key)
}

func (e *SettingsError) Unwrap() error {
	return e.Err
}
