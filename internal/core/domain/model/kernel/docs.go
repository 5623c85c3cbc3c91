// Package kernel contains shared value objects used across the packing domain model.
// Types here carry no business behavior of their own; they exist to give identifiers
// and construction discipline a single home.
package kernel
