// Package openapi turns the request body schema of an OpenAPI 3 operation
// into a fields.Source, so a form can be declared straight from an API
// document. Documents are parsed with kin-openapi; internal $refs are
// resolved by the loader.
package openapi
