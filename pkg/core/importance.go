package core

// Importance ranks a note. The zero value is not a valid importance; use Normal.
type Importance string

const (
	Important   Importance = "important"
	Normal      Importance = "normal"
	Unimportant Importance = "unimportant"
)

// ParseImportance maps a wire tag to an Importance.
// Tags are matched exactly; anything else is an *EnumParseError.
func ParseImportance(tag string) (Importance, error) {
	switch Importance(tag) {
	case Important, Normal, Unimportant:
		return Importance(tag), nil
	default:
		return "", &EnumParseError{Field: KeyImportance, Value: tag}
	}
}

// Valid reports whether i is one of the three known tags.
func (i Importance) Valid() bool {
	_, err := ParseImportance(string(i))
	return err == nil
}

func (i Importance) String() string {
	return string(i)
}
