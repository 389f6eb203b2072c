package app

import (
	"fyne.io/fyne/v2"
)

const (
	notesPrefix = "belief_notes_v1:"
	defaultNote = "# Notes\n\n"
)

// NotesStore keeps one markdown note per key in the app preferences
type NotesStore struct {
	prefs    fyne.Preferences
	defaults map[string]string
}

// NewNotesStore creates a store whose unsaved notes fall back to defaults
func NewNotesStore(prefs fyne.Preferences, defaults map[string]string) *NotesStore {
	return &NotesStore{prefs: prefs, defaults: defaults}
}

// SetDefaults replaces the fallback notes, e.g. after a schema reload
func (n *NotesStore) SetDefaults(defaults map[string]string) {
	n.defaults = defaults
}

// Load returns the saved note for key, the schema default, or an empty notes heading
func (n *NotesStore) Load(key string) string {
	fallback, ok := n.defaults[key]
	if !ok {
		fallback = defaultNote
	}
	return n.prefs.StringWithFallback(notesPrefix+key, fallback)
}

// Save stores text as the note for key
func (n *NotesStore) Save(key, text string) {
	n.prefs.SetString(notesPrefix+key, text)
}

// Clear drops the saved note so the default shows again
func (n *NotesStore) Clear(key string) {
	n.prefs.RemoveValue(notesPrefix + key)
}
