// Package formkit builds declarative HTML forms. Fields are declared in
// ordered groups (required, optional, fields, auto), merged along a form's
// ancestry, instantiated through a type registry, nested by dotted names,
// validated against submitted params and rendered by a widget registry.
//
// The root package re-exports the common entry points; the building blocks
// live under pkg/.
package formkit
