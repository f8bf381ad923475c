// Package render holds the markup side of the modal directive: the Fragment
// handed over by the directive, the Skeleton contract that turns it into
// HTML, and a registry of the built-in Bootstrap skeletons embedded from
// templates/.
package render
