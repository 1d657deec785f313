package build

import (
	"github.com/basalt-render/raymarch/pkg/mathx"
	"github.com/basalt-render/raymarch/pkg/sexpr"
)

func requireNumber(opts map[string]sexpr.Value, form, key string) (float64, error) {
	v, ok := opts[key]
	if !ok {
		return 0, ArityError{Form: form, Want: "a :" + key + " option", Got: len(opts)}
	}
	return numberOf(v)
}

func optionalNumber(opts map[string]sexpr.Value, key string, def float64) (float64, error) {
	v, ok := opts[key]
	if !ok {
		return def, nil
	}
	return numberOf(v)
}

func requireVector(opts map[string]sexpr.Value, form, key string) (mathx.Vec3, error) {
	v, ok := opts[key]
	if !ok {
		return mathx.Vec3{}, ArityError{Form: form, Want: "a :" + key + " option", Got: len(opts)}
	}
	return vectorOf(v)
}

func requireColor(opts map[string]sexpr.Value, form, key string) (mathx.Color, error) {
	v, ok := opts[key]
	if !ok {
		return mathx.Color{}, ArityError{Form: form, Want: "a :" + key + " option", Got: len(opts)}
	}
	return colorOf(v)
}

func requireValue(opts map[string]sexpr.Value, form, key string) (sexpr.Value, error) {
	v, ok := opts[key]
	if !ok {
		return sexpr.Value{}, ArityError{Form: form, Want: "a :" + key + " option", Got: len(opts)}
	}
	return v, nil
}

// rejectUnknown fails if opts contains any key outside the given fixed set
// (spec §4.C's UnknownOption, e.g. phong's recognized-keyword list).
func rejectUnknown(opts map[string]sexpr.Value, form string, allowed ...string) error {
	ok := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		ok[a] = true
	}
	for k := range opts {
		if !ok[k] {
			return UnknownOption{Form: form, Option: k}
		}
	}
	return nil
}
