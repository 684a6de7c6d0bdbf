// Package paths locates the directories that other packages resolve
// references against.
//
// A project root is the closest directory containing an Assets directory.
// A repository root is the closest directory containing a git HEAD.
package paths
