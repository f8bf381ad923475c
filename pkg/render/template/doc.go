// Package template defines the renderer-agnostic template seam. The gotemplate
// subpackage implements it on pongo2 with the modal directive installed.
package template
