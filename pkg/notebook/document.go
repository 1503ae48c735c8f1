package notebook

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/aretw0/quire/pkg/core"
)

// documentAPI keeps numbers as json.Number and sorts object keys so that
// identical collections always serialize to identical bytes.
var documentAPI = sonic.Config{
	UseNumber:   true,
	SortMapKeys: true,
}.Froze()

// encodeDocument renders notes as a top-level JSON array.
func encodeDocument(notes []core.Note, d core.Defaults) ([]byte, error) {
	items := make([]any, 0, len(notes))
	for _, n := range notes {
		items = append(items, n.ToValue(d).Any())
	}

	data, err := documentAPI.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode notebook: %w", err)
	}
	return data, nil
}

// decodeDocument parses a JSON array of notes.
//
// An empty body is an empty notebook. A body that is not a JSON array is a
// *core.DocumentError. Each element is converted on its own, so an element
// that cannot be represented (a number out of float64 range, say) only costs
// that element. Under LoadLenient a bad element becomes a warning and is
// skipped; under LoadStrict it aborts with a core.ParseWarning. Colour problems
// are always warnings.
func decodeDocument(data []byte, d core.Defaults, policy LoadPolicy) ([]core.Note, []core.ParseWarning, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, nil
	}

	var raw any
	if err := documentAPI.Unmarshal(data, &raw); err != nil {
		return nil, nil, &core.DocumentError{Err: err}
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, nil, &core.DocumentError{Err: fmt.Errorf("top level is %s, want array", describe(raw))}
	}

	notes := make([]core.Note, 0, len(items))
	var warnings []core.ParseWarning
	for i, item := range items {
		idx := i
		n, err := decodeElement(item, d, func(err error) {
			warnings = append(warnings, core.ParseWarning{Index: idx, Err: err})
		})
		if err != nil {
			w := core.ParseWarning{Index: i, Err: err}
			if policy == LoadStrict {
				return nil, warnings, w
			}
			warnings = append(warnings, w)
			continue
		}
		notes = append(notes, n)
	}

	return notes, warnings, nil
}

func decodeElement(item any, d core.Defaults, warn func(error)) (core.Note, error) {
	v, err := core.FromAny(item)
	if err != nil {
		return core.Note{}, &core.ValidationError{Reason: err.Error()}
	}
	return core.ParseNote(v, d, warn)
}

// describe names the JSON kind of a decoded value for error messages.
func describe(x any) string {
	if v, err := core.FromAny(x); err == nil {
		return v.Kind().String()
	}
	return fmt.Sprintf("%T", x)
}
