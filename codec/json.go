package codec

import "encoding/json"

// JSON encodes documents with encoding/json. Snapshots written with it are
// readable by tools that only have the standard library.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns "json".
func (JSON) Name() string { return "json" }

// Default is used by Layout.MarshalJSON, Selection JSON methods and snapshot
// writers that do not set a codec.
var Default Codec = GoJSON{}
