// Package api handles incoming HTTP requests for parks, owners and tokens.
// Handlers decode JSON:API request documents, validate them, call the stores
// and translate errors into status codes and JSON:API error documents.
package api
