// Package refcheck validates many asset references at once.
//
// References are listed in a YAML (or JSON) manifest, resolved concurrently
// with an [assetref.Resolver], and written out as a text, JSON or YAML
// report.
package refcheck
