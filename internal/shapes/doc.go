// Package shapes is the catalogue of XMI entity and relationship shapes.
//
// Each shape is a Go type with a constructor that takes a raw record and
// returns the typed value or a *domain.ValidationError listing every
// rejected field. Register wires the constructors into a registry.Registry;
// Default returns a sealed registry holding the whole catalogue.
package shapes
