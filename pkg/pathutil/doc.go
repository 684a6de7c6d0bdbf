// Package pathutil checks that resolved file paths stay inside a root
// directory, following symbolic links.
package pathutil
