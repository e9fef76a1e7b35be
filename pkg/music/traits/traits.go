package traits

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// TraitKeys lists every tunable field the trait completion must return:
// 14 attributes, each with a min_, max_ and target_ variant.
var TraitKeys = []string{
	"min_acousticness", "max_acousticness", "target_acousticness",
	"min_danceability", "max_danceability", "target_danceability",
	"min_duration_ms", "max_duration_ms", "target_duration_ms",
	"min_energy", "max_energy", "target_energy",
	"min_instrumentalness", "max_instrumentalness", "target_instrumentalness",
	"min_key", "max_key", "target_key",
	"min_liveness", "max_liveness", "target_liveness",
	"min_loudness", "max_loudness", "target_loudness",
	"min_mode", "max_mode", "target_mode",
	"min_popularity", "max_popularity", "target_popularity",
	"min_speechiness", "max_speechiness", "target_speechiness",
	"min_tempo", "max_tempo", "target_tempo",
	"min_time_signature", "max_time_signature", "target_time_signature",
	"min_valence", "max_valence", "target_valence",
}

var knownTraitKeys = func() map[string]struct{} {
	m := make(map[string]struct{}, len(TraitKeys))
	for _, k := range TraitKeys {
		m[k] = struct{}{}
	}
	return m
}()

// Fixed values appended after verification; they parameterize the catalog
// search and are never inferred from the model.
const (
	DefaultLimit  = 3
	DefaultMarket = "US"
)

var (
	ErrNoJSONObject = errors.New("no JSON object in completion")
	ErrTraitSchema  = errors.New("trait completion does not match schema")
	ErrNoGenres     = errors.New("no known genres in completion")
	ErrExhausted    = errors.New("trait extraction attempts exhausted")
)

// Traits is the validated track-selection profile produced by the
// extraction pipeline. Fields holds exactly the 42 trait keys; a nil value
// means the model left the attribute unconstrained.
type Traits struct {
	Fields map[string]*float64
	Genres []string
	Limit  int
	Market string
}

// MarshalJSON flattens the trait fields alongside the auxiliary values so
// the wire shape matches what the catalog search consumes.
func (t Traits) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(t.Fields)+3)
	for k, v := range t.Fields {
		if v != nil {
			out[k] = *v
		} else {
			out[k] = nil
		}
	}
	out["limit"] = t.Limit
	out["market"] = t.Market
	out["genres"] = t.Genres
	return json.Marshal(out)
}

// firstJSONObject decodes the first syntactically complete top-level JSON
// object in the text. Models often wrap their JSON in prose or markdown
// fences; scanning candidate '{' offsets with a real decoder handles nested
// objects and stray braces that a naive brace slice would corrupt.
func firstJSONObject(raw string) (map[string]json.RawMessage, error) {
	rest := raw
	offset := 0
	for {
		idx := strings.IndexByte(rest, '{')
		if idx < 0 {
			return nil, ErrNoJSONObject
		}
		dec := json.NewDecoder(strings.NewReader(raw[offset+idx:]))
		var obj map[string]json.RawMessage
		if err := dec.Decode(&obj); err == nil {
			return obj, nil
		}
		offset += idx + 1
		rest = raw[offset:]
	}
}

// ParseTraitFields verifies a raw trait completion against the fixed
// schema: every one of the 42 keys present, no key outside that set, and
// every value a JSON number or null. An incomplete result is a hard
// failure; substituting defaults would corrupt downstream numeric filters.
func ParseTraitFields(completion string) (map[string]*float64, error) {
	obj, err := firstJSONObject(completion)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]*float64, len(TraitKeys))
	for key, value := range obj {
		if _, ok := knownTraitKeys[key]; !ok {
			return nil, fmt.Errorf("%w: unexpected key %q", ErrTraitSchema, key)
		}
		trimmed := bytes.TrimSpace(value)
		if string(trimmed) == "null" {
			fields[key] = nil
			continue
		}
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return nil, fmt.Errorf("%w: key %q is not a number or null", ErrTraitSchema, key)
		}
		fields[key] = &n
	}

	for _, key := range TraitKeys {
		if _, ok := obj[key]; !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrTraitSchema, key)
		}
	}

	return fields, nil
}
