// Package jsonapi renders parks and owners as JSON:API documents
// (application/vnd.api+json) using github.com/DataDog/jsonapi.
//
// Attributes are restricted to the schema allow-list, every resource carries a
// self link, parks carry an owner relationship, and paged collections carry
// first/prev/next/last links and pagination meta.
package jsonapi
