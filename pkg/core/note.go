package core

import (
	"github.com/google/uuid"
)

// Serialized key names.
const (
	KeyTitle      = "title"
	KeyContent    = "content"
	KeyID         = "id"
	KeyImportance = "importance"
	KeyColor      = "color"
)

// Defaults holds the values that are omitted on write and assumed on read.
type Defaults struct {
	Importance Importance
	Color      Color
}

// StandardDefaults is the default-omission contract of the notebook document.
var StandardDefaults = Defaults{Importance: Normal, Color: White}

// Note is one persisted user record. It is a comparable value; treat it as immutable.
type Note struct {
	Title      string
	Content    string
	Importance Importance
	ID         string
	Color      Color
}

// NoteOption customises a Note built with NewNote.
type NoteOption func(*Note)

// WithID sets the note id instead of generating one.
func WithID(id string) NoteOption {
	return func(n *Note) {
		n.ID = id
	}
}

// WithColor sets the note colour. The default is white.
func WithColor(c Color) NoteOption {
	return func(n *Note) {
		n.Color = c
	}
}

// NewNote builds a note. Without WithID a random UUID is assigned. An
// importance that is not one of the known tags, including the zero value,
// becomes Normal so the note always serializes to something ParseNote accepts.
func NewNote(title, content string, importance Importance, opts ...NoteOption) Note {
	if !importance.Valid() {
		importance = Normal
	}
	n := Note{
		Title:      title,
		Content:    content,
		Importance: importance,
		Color:      White,
	}
	for _, opt := range opts {
		opt(&n)
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return n
}

// ToValue serializes the note. Importance and colour are only written when
// they differ from d.
func (n Note) ToValue(d Defaults) Value {
	fields := map[string]Value{
		KeyTitle:   Text(n.Title),
		KeyContent: Text(n.Content),
		KeyID:      Text(n.ID),
	}
	if n.Importance != d.Importance {
		fields[KeyImportance] = Text(string(n.Importance))
	}
	if n.Color != d.Color {
		fields[KeyColor] = Text(EncodeColor(n.Color))
	}
	return Object(fields)
}

// WarnFunc receives recoverable problems found while parsing.
type WarnFunc func(error)

// ParseNote rebuilds a note from its serialized form.
//
// title, content and id are required text fields. importance and colour are
// optional and fall back to d. An undecodable colour is not fatal: it becomes
// black and the *ColorParseError is passed to warn (which may be nil).
func ParseNote(v Value, d Defaults, warn WarnFunc) (Note, error) {
	if v.Kind() != KindObject {
		return Note{}, &ValidationError{Reason: "expected object, got " + v.Kind().String()}
	}

	title, err := requireText(v, KeyTitle)
	if err != nil {
		return Note{}, err
	}
	content, err := requireText(v, KeyContent)
	if err != nil {
		return Note{}, err
	}
	id, err := requireText(v, KeyID)
	if err != nil {
		return Note{}, err
	}

	n := Note{
		Title:      title,
		Content:    content,
		ID:         id,
		Importance: d.Importance,
		Color:      d.Color,
	}

	if tag, ok, err := optionalText(v, KeyImportance); err != nil {
		return Note{}, err
	} else if ok {
		imp, err := ParseImportance(tag)
		if err != nil {
			return Note{}, err
		}
		n.Importance = imp
	}

	if hex, ok, err := optionalText(v, KeyColor); err != nil {
		return Note{}, err
	} else if ok {
		c, cerr := DecodeColor(hex)
		if cerr != nil && warn != nil {
			warn(cerr)
		}
		n.Color = c
	}

	return n, nil
}

// NoteFromValue parses with StandardDefaults and discards colour warnings.
func NoteFromValue(v Value) (Note, error) {
	return ParseNote(v, StandardDefaults, nil)
}

func requireText(v Value, key string) (string, error) {
	f, ok := v.Field(key)
	if !ok {
		return "", missingField(key)
	}
	s, ok := f.AsText()
	if !ok {
		return "", wrongKind(key, KindText, f.Kind())
	}
	return s, nil
}

func optionalText(v Value, key string) (string, bool, error) {
	f, ok := v.Field(key)
	if !ok {
		return "", false, nil
	}
	s, ok := f.AsText()
	if !ok {
		return "", false, wrongKind(key, KindText, f.Kind())
	}
	return s, true, nil
}
