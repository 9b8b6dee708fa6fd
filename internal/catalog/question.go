package catalog

// Difficulty tiers run from TierMin (easiest) to TierMax (hardest).
const (
	TierMin = 1
	TierMax = 4
)

// Question is one catalog record. JSON field names match the bundle format the
// game client ships with, so a catalog dump can be cached on device as-is.
type Question struct {
	ID         int      `json:"id"`
	Category   string   `json:"category"`
	TextTR     string   `json:"text_tr"`
	TextEN     string   `json:"text_en,omitempty"`
	Answer     string   `json:"answer"`
	Wrong      []string `json:"wrong"`
	Difficulty int      `json:"difficulty"`
	TimeLimit  int      `json:"time"`
}

// Bundle is the wire envelope for a full catalog dump.
type Bundle struct {
	Questions []Question `json:"questions"`
}
