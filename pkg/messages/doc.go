// Package messages defines every user-visible message the handler-state
// controller and its console can emit.
//
// Messages form a closed set: each kind is a struct type implementing
// Message, carrying its own typed payload and a fixed severity. A Catalog
// renders any Message into text for one locale, so there is no lookup by
// string key and no "message not found" path at runtime.
//
// Two catalogs exist, English and Korean. ParseLocale maps user input such as
// "en-US", "ko" or "silent" to a Locale; the silent locale is honoured by the
// logging reporter, which then discards everything.
package messages
