// Package directive implements the bsmodal block tag for pongo2 templates.
//
// The tag wraps its block content in Bootstrap modal markup:
//
//	{% bsmodal <title> [<dialogId>] [close_title_button=Yes|No] [header_bg_css=<cssClass>] [header_theme=<token>] %}
//	  <arbitrary nested template content>
//	{% endbsmodal %}
//
// The title is either a quoted literal or a context variable path. Variable
// paths that do not resolve fall back to their own text, so both forms can
// share the same argument position. The dialog id defaults to "modal".
// Options with unknown keys are ignored.
//
// Tags are registered process wide with pongo2. Build a Directive with New
// and call Install once at start-up, or use Register for both steps.
package directive
