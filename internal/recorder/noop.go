package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordJackpot(_ *JackpotSettlement) error { return nil }
func (n *NoopRecorder) RecordMatch(_ *MatchRecord) error         { return nil }
func (n *NoopRecorder) RecordSeason(_ *SeasonRecord) error       { return nil }
func (n *NoopRecorder) RecordBet(_ *BetSettlement) error         { return nil }
func (n *NoopRecorder) Close() error                             { return nil }
