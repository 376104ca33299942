package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Use it when the most portable/lowest-dependency option matters more than
// throughput. Persisted data always records the codec name, so files
// written with either JSON codec remain readable.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
//
// This affects newly-written files only; existing files are self-describing
// and select their codec by name on load.
var Default Codec = GoJSON{}
