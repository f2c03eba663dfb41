// Package domain contains the core entities of the parks service (parks, their
// locations and amenities, and owners), the immutable Schema describing which
// amenities and attributes are recognized, and the typed errors shared by the
// storage and HTTP layers.
package domain
