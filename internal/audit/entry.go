package audit

// Entry is one gate decision in the hash-chained JSONL log. All fields
// are flat structs so json.Marshal field order is deterministic and
// the line hash is reproducible.
type Entry struct {
	Timestamp        string   `json:"ts"`
	ProjectDir       string   `json:"project_dir"`
	Command          string   `json:"command"`
	Commands         []string `json:"commands,omitempty"`
	Allowed          bool     `json:"allowed"`
	Rule             string   `json:"rule,omitempty"`
	Reason           string   `json:"reason,omitempty"`
	OffendingSegment string   `json:"offending_segment,omitempty"`
	StrictMode       bool     `json:"strict_mode,omitempty"`
	PrevHash         string   `json:"prev_hash"`
}
