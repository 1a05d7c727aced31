package report

import (
	"encoding/json"
	"io"
)

// JSONOutput is the JSON structure written to stdout in --json mode.
// Buckets carries the keyed error map when the caller has one.
type JSONOutput struct {
	Valid        bool      `json:"valid"`
	Messages     []Message `json:"messages"`
	FatalCount   int       `json:"fatal_count"`
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
	Buckets      *Buckets  `json:"buckets,omitempty"`
}

// WriteJSON writes the report in JSON format to w.
func (r *Report) WriteJSON(w io.Writer) error {
	return r.WriteJSONWithBuckets(w, nil)
}

// WriteJSONWithBuckets writes the report plus a bucketed error map.
func (r *Report) WriteJSONWithBuckets(w io.Writer, b *Buckets) error {
	out := JSONOutput{
		Valid:        r.IsValid(),
		Messages:     r.Messages,
		FatalCount:   r.FatalCount(),
		ErrorCount:   r.ErrorCount(),
		WarningCount: r.WarningCount(),
		Buckets:      b,
	}
	if out.Messages == nil {
		out.Messages = []Message{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
