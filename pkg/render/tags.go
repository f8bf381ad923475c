package render

import "sync"

var tagTableMu sync.Mutex

// WithTagTable runs fn while holding the lock that guards pongo2's global
// tag table. pongo2 reads the table while parsing and writes it on
// RegisterTag/ReplaceTag, so parses and tag changes made by this module go
// through here. fn must not call WithTagTable itself.
func WithTagTable(fn func() error) error {
	tagTableMu.Lock()
	defer tagTableMu.Unlock()
	return fn()
}
