// Package model defines the declarative dialog form consumed by the dialog
// core and its presenters. A Form is an ordered list of Fields; each field is
// an input (text or password), a listbox (single or multi select) or a
// combobox (dropdown). Selection fields carry Options that pair the label
// shown to the user (Display) with the value handed back to calling code
// (Value). Options may activate mode tags when chosen; fields list the tags
// that hide (Hide) or disable (Disable) them. Field labels are unique within
// a form and double as lookup keys in Snapshot and Result.
package model
