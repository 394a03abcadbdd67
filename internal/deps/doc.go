// Package deps checks that the external binaries remuxer shells out to are
// installed and reports their versions.
package deps
