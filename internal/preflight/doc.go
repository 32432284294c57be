// Package preflight validates the environment before the daemon starts
// processing: directory access, free disk space, external binaries, and
// translation endpoint reachability.
package preflight
