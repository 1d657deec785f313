package build

import "fmt"

// UndefinedName is returned when a form references a name that has not yet
// been declared (forward references are disallowed, spec §4.C).
type UndefinedName struct {
	Kind string
	Name string
}

func (e UndefinedName) Error() string {
	return fmt.Sprintf("build: undefined %s %q", e.Kind, e.Name)
}

// TypeMismatch is returned when a name resolves to the wrong kind of entity
// (e.g. a node name used where a pattern is required).
type TypeMismatch struct {
	Expected string
	Got      string
}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("build: expected %s, got %s", e.Expected, e.Got)
}

// ArityError is returned when a form has the wrong number of arguments.
type ArityError struct {
	Form string
	Want string
	Got  int
}

func (e ArityError) Error() string {
	return fmt.Sprintf("build: %s: expected %s arguments, got %d", e.Form, e.Want, e.Got)
}

// UnknownOption is returned when a form uses a keyword outside its fixed
// recognized set (spec §4.C, e.g. phong's {:pattern, :ambient, :diffuse,
// :specular, :shininess, :reflective}).
type UnknownOption struct {
	Form   string
	Option string
}

func (e UnknownOption) Error() string {
	return fmt.Sprintf("build: %s: unrecognized option :%s", e.Form, e.Option)
}
