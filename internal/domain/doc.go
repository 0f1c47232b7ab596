// Package domain contains the core graph model of xmigraph: entities,
// relationships, the error log and the Model container that owns them.
//
// The domain does not read files or parse YAML. Concrete entity shapes live in
// package shapes; infra adapters map into and out of these types.
package domain
