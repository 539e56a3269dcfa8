package metrics

import "go.uber.org/zap"

// Tally counts what a sweep visited and decided. It is not safe for
// concurrent use; the sweep is sequential.
type Tally struct {
	Databases   int64 `json:"databases"`
	Models      int64 `json:"models"`
	Assets      int64 `json:"assets"`
	Found       int64 `json:"found"`
	Deleted     int64 `json:"deleted"`
	WouldDelete int64 `json:"would_delete"`
	Missing     int64 `json:"missing"`
}

func NewTally() *Tally {
	return &Tally{}
}

func (t *Tally) Fields() []zap.Field {
	return []zap.Field{
		zap.Int64("databases", t.Databases),
		zap.Int64("models", t.Models),
		zap.Int64("assets", t.Assets),
		zap.Int64("found", t.Found),
		zap.Int64("deleted", t.Deleted),
		zap.Int64("would_delete", t.WouldDelete),
		zap.Int64("missing", t.Missing),
	}
}
