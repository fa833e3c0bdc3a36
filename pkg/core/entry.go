package core

// TimeFormat is the canonical timestamp form every stored entry carries.
const TimeFormat = "2006-01-02 15:04:05"

// Entry is one normalized, timestamped unit of log output.
// Immutable once created; owned by the ingest buffer.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Content   string `json:"content"`
}

// FilterMode is the polarity applied to the selected level tokens.
type FilterMode string

const (
	// IncludeSelected keeps entries whose content mentions a selected level.
	IncludeSelected FilterMode = "include"
	// ExcludeSelected hides entries whose content mentions a selected level.
	ExcludeSelected FilterMode = "exclude"
)

// LevelTokens are the lowercase level markers recognized in log content,
// in severity order. Matching is plain substring containment.
var LevelTokens = []string{
	"trace",
	"debug",
	"info",
	"warn",
	"warning",
	"error",
	"err",
	"fatal",
	"critical",
	"crit",
}
