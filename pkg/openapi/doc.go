// Package openapi exposes the loader and parser contracts used to import
// dialog forms from OpenAPI 3 documents, and the mapping from an operation's
// request body to a model.Form. Implementations live under internal/openapi
// to keep kin-openapi out of the public API.
package openapi
