// Package daemon ties the queue store and workflow manager into a single
// lifecycle with flock-based locking to prevent multiple daemon instances
// from sharing one queue database.
package daemon
