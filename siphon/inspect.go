package siphon

import "encoding/json"

// Snapshot is a point-in-time dump of a Siphon's bookkeeping state, for
// debugging a running pipeline.
type Snapshot struct {
	Pending    int    `json:"pending"`
	Started    bool   `json:"started"`
	Stopped    bool   `json:"stopped"`
	Terminal   bool   `json:"terminal"`
	Awaiting   bool   `json:"awaiting"`
	SelfPaused bool   `json:"self_paused"`
	Diverted   bool   `json:"diverted"`
	InputType  string `json:"input_type"`
	OutputType string `json:"output_type"`
}

// Inspect renders s's current state as compact JSON via encoding/json --
// there being no reason to hand-roll an encoder for an ad hoc debug dump.
// Callers that only need one field out of the result (such as this
// package's tests) should reach for jsonparser.GetString/GetInt instead of decoding
// the whole thing back into a struct.
func Inspect(s *Siphon) []byte {
	snap := Snapshot{
		Pending:    len(s.pending),
		Started:    s.startedFired,
		Stopped:    s.flowWasStopped,
		Terminal:   s.terminal,
		Awaiting:   s.currentAwait != nil,
		SelfPaused: s.downstreamPausedBySelf != nil,
		Diverted:   s.divertedTo != nil,
		InputType:  string(s.tube.InputType()),
		OutputType: string(s.tube.OutputType()),
	}
	out, err := json.Marshal(snap)
	if err != nil {
		// Snapshot has no types json.Marshal can choke on; kept defensive
		// only because Inspect's signature promises a result, never an error.
		return []byte(`{}`)
	}
	return out
}
