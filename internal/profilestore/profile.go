// Package profilestore implements the persistent, atomic, multi-path
// profile registry.
package profilestore

// Profile is a named entry mapping a user-chosen label to one or more
// source directories, in insertion order.
type Profile struct {
	Name  string   `json:"-"`
	Paths []string `json:"-"`
}
