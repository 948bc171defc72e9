package prefscore

import sm "github.com/someonegg/stablematch"

// ScoreRecord pins the score one agent gives one counterpart, or marks the
// pair unacceptable, regardless of the base scorer.
type ScoreRecord struct {
	ScoreKey `yaml:",inline"`
	ScoreVal `yaml:",inline"`
}

// ScoreKey names a directed pair: From's view of To.
type ScoreKey struct {
	From sm.ID `json:"from" yaml:"from"`
	To   sm.ID `json:"to" yaml:"to"`
}

// ScoreVal is the pinned score. Reject drops the pair from From's list even
// when Score is under Derive's threshold.
type ScoreVal struct {
	Score  float32 `json:"score" yaml:"score"`
	Reject bool    `json:"reject,omitempty" yaml:"reject,omitempty"`
}

type overrideScorer struct {
	orig Scorer
	recs map[ScoreKey]ScoreVal
}

// NewOverrideScorer layers per-pair records over orig. Later records for
// the same pair win.
func NewOverrideScorer(orig Scorer, records []ScoreRecord) Scorer {
	recs := make(map[ScoreKey]ScoreVal)
	for _, rec := range records {
		recs[rec.ScoreKey] = rec.ScoreVal
	}
	return &overrideScorer{
		orig: orig,
		recs: recs,
	}
}

func (s *overrideScorer) Score(from, to sm.ID) (float32, bool) {
	key := ScoreKey{From: from, To: to}
	if val, ok := s.recs[key]; ok {
		return val.Score, !val.Reject
	}
	return s.orig.Score(from, to)
}
