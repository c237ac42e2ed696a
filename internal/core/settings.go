package core

import (
	"fmt"
	"maps"
)

type ValueType string

const (
	TypeBool   ValueType = "boolean"
	TypeObject ValueType = "object"
)

const (
	SettingValidateFileExtension = "validateFileExtension"
	SettingCompilerSettings      = "vuejsCompilerSettings"
)

type OptionSpec struct {
	Key     string
	Type    ValueType
	Default any
}

// SettingsSchema lists every recognised build setting. A nil Default makes
// the key required.
var SettingsSchema = []OptionSpec{
	{Key: SettingValidateFileExtension, Type: TypeBool, Default: true},
	{Key: SettingCompilerSettings, Type: TypeObject, Default: map[string]any{"pad": "line"}},
}

type Settings struct {
	ValidateFileExtension bool
	CompilerSettings      map[string]any
}

func DefaultSettings() Settings {
	s, _ := ParseSettings(nil)
	return s
}

// ParseSettings validates raw against SettingsSchema. Keys outside the
// schema are ignored.
func ParseSettings(raw map[string]any) (Settings, error) {
	values := make(map[string]any, len(SettingsSchema))
	for _, spec := range SettingsSchema {
		v, err := spec.resolve(raw)
		if err != nil {
			return Settings{}, err
		}
		values[spec.Key] = v
	}

	return Settings{
		ValidateFileExtension: values[SettingValidateFileExtension].(bool),
		CompilerSettings:      maps.Clone(values[SettingCompilerSettings].(map[string]any)),
	}, nil
}

func (spec OptionSpec) resolve(raw map[string]any) (any, error) {
	v, ok := raw[spec.Key]
	if !ok {
		if spec.Default == nil {
			return nil, &SettingsError{Key: spec.Key, Err: ErrMissingSetting}
		}
		if m, isMap := spec.Default.(map[string]any); isMap {
			return maps.Clone(m), nil
		}
		return spec.Default, nil
	}

	switch spec.Type {
	case TypeBool:
		if b, isBool := v.(bool); isBool {
			return b, nil
		}
	case TypeObject:
		if m, isMap := asObject(v); isMap {
			return m, nil
		}
	}
	return nil, &SettingsError{
		Key:    spec.Key,
		Reason: fmt.Sprintf("expected %s, got %T", spec.Type, v),
		Err:    ErrInvalidSetting,
	}
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	}
	return nil, false
}

type PadMode string

const (
	PadNone  PadMode = ""
	PadLine  PadMode = "line"
	PadSpace PadMode = "space"
)

// ParserOptions configures the section parser.
type ParserOptions struct {
	Pad      PadMode
	Deindent bool
}

// ParserOptions reads the section parser options out of the opaque
// compiler settings. pad accepts "line", "space", true (line) or false.
func (s Settings) ParserOptions() (ParserOptions, error) {
	opts := ParserOptions{Deindent: true}

	if v, ok := s.CompilerSettings["pad"]; ok && v != nil {
		switch p := v.(type) {
		case bool:
			if p {
				opts.Pad = PadLine
			}
		case string:
			switch PadMode(p) {
			case PadLine, PadSpace:
				opts.Pad = PadMode(p)
			case "", "none", "false":
			default:
				return opts, &SettingsError{
					Key:    SettingCompilerSettings + ".pad",
					Reason: fmt.Sprintf("unknown pad mode %q", p),
					Err:    ErrInvalidSetting,
				}
			}
		default:
			return opts, &SettingsError{
				Key:    SettingCompilerSettings + ".pad",
				Reason: fmt.Sprintf("expected string or boolean, got %T", v),
				Err:    ErrInvalidSetting,
			}
		}
	}

	if v, ok := s.CompilerSettings["deindent"]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return opts, &SettingsError{
				Key:    SettingCompilerSettings + ".deindent",
				Reason: fmt.Sprintf("expected boolean, got %T", v),
				Err:    ErrInvalidSetting,
			}
		}
		opts.Deindent = b
	}

	return opts, nil
}
