// Package session drives one play of a chart: it matches key events to
// notes, judges them and feeds health and score in a fixed order so a replay
// of the same inputs always lands on the same result.
package session

import (
	"math"
	"sort"
	"time"

	"git.lost.host/meutraa/lanejudge/internal/game"
	"git.lost.host/meutraa/lanejudge/internal/health"
	"git.lost.host/meutraa/lanejudge/internal/judge"
	"git.lost.host/meutraa/lanejudge/internal/score"
)

// Config is an immutable snapshot of the settings a play runs with.
type Config struct {
	Params             judge.Params
	Rate               float64 // Playback rate, note times are divided by it
	PoolEnabled        bool
	Allowed            game.ResultSet
	DrainRate          float64
	HpMultiplierNormal float64
	InitialHealth      float64
	BaseScores         score.BaseScores
}

func DefaultConfig() Config {
	return Config{
		Params:             judge.DefaultParams(),
		Rate:               1,
		Allowed:            game.AllResults,
		DrainRate:          5,
		HpMultiplierNormal: health.DefaultHpMultiplierNormal,
		InitialHealth:      1,
		BaseScores:         score.DefaultBaseScores,
	}
}

// Judgement is one entry of the result stream.
type Judgement struct {
	Note   *game.Note
	Kind   game.ObjectKind
	Column uint8
	Result game.HitResult
	Offset float64 // ms, late positive
	Time   time.Duration
	Health float64
	Combo  int
}

type Session struct {
	cfg     Config
	chart   *game.Chart
	windows judge.HitWindowSet
	holds   *judge.LongNoteScorer

	health *health.Processor
	score  *score.Processor

	order   []game.HitObject
	cursor  int
	holding map[uint8]*game.Note
	offsets map[*game.Note]float64 // head offsets of holds in progress

	holdScore  int
	judgements []Judgement

	// OnJudgement is called after every judgement has been applied.
	OnJudgement func(j Judgement)
}

// New prepares a play of a copy of chart. The copy's notes are sorted by
// time, which the closest note search relies on.
func New(chart *game.Chart, cfg Config) *Session {
	c := chart.Clone()
	for _, n := range c.Notes {
		n.Reset()
	}
	sort.SliceStable(c.Notes, func(i, j int) bool {
		return c.Notes[i].Time < c.Notes[j].Time
	})
	return &Session{
		cfg:     cfg,
		chart:   c,
		windows: judge.ComputeWindows(cfg.Params),
		holds:   judge.NewLongNoteScorer(cfg.Params),
		health:  health.NewProcessor(cfg.Params.Mode, cfg.DrainRate, cfg.HpMultiplierNormal, cfg.InitialHealth),
		score:   score.NewProcessor(cfg.BaseScores, c.JudgementCount()),
		order:   c.JudgementOrder(),
		holding: map[uint8]*game.Note{},
		offsets: map[*game.Note]float64{},
	}
}

func (s *Session) Chart() *game.Chart {
	return s.chart
}

func (s *Session) Windows() judge.HitWindowSet {
	return s.windows
}

func (s *Session) Health() float64 {
	return s.health.Health()
}

func (s *Session) Judgements() []Judgement {
	return s.judgements
}

// Distance is the signed error between an input and a note, late positive.
func Distance(rate float64, expected, hitTime time.Duration) time.Duration {
	return hitTime - time.Duration(math.Round(float64(expected)/rate))
}

func (s *Session) offset(expected, hitTime time.Duration) float64 {
	return game.Milliseconds(Distance(s.cfg.Rate, expected, hitTime))
}

func (s *Session) classify(offset float64) game.HitResult {
	return judge.Classify(offset, s.windows, s.cfg.PoolEnabled, s.cfg.Allowed)
}

func (s *Session) apply(n *game.Note, kind game.ObjectKind, r game.HitResult, offset float64, t time.Duration) {
	s.health.Apply(r, kind)
	s.score.Apply(r, offset)
	j := Judgement{
		Note:   n,
		Kind:   kind,
		Column: n.Index,
		Result: r,
		Offset: offset,
		Time:   t,
		Health: s.health.Health(),
		Combo:  s.score.Combo(),
	}
	s.judgements = append(s.judgements, j)
	if s.OnJudgement != nil {
		s.OnJudgement(j)
	}
}

// closest finds the nearest note in a column that still needs its head judged.
func (s *Session) closest(column uint8, hitTime time.Duration) (*game.Note, float64) {
	var closestNote *game.Note
	distance := math.Inf(1)
	absDistance := math.Inf(1)

	for _, note := range s.chart.Notes {
		if note.Judged() || note.IsMine || note.Index != column {
			continue
		}
		dd := s.offset(note.Time, hitTime)
		d := math.Abs(dd)
		if d < absDistance {
			distance = dd
			absDistance = d
			closestNote = note
		} else if nil != closestNote {
			// already found the closest, and this d is > md
			break
		}
	}
	return closestNote, distance
}

// Input feeds one key event.
func (s *Session) Input(in game.Input) game.HitResult {
	if in.Released {
		return s.Release(in.Index, in.HitTime)
	}
	return s.Press(in.Index, in.HitTime)
}

// Press judges a key press in column at hitTime. It returns None when the
// press is too far from any note to be judged.
func (s *Session) Press(column uint8, hitTime time.Duration) game.HitResult {
	s.Advance(hitTime)

	note, offset := s.closest(column, hitTime)
	if note == nil {
		return game.None
	}
	r := s.classify(offset)
	if r == game.None {
		return game.None
	}

	note.HitTime = hitTime
	note.Head = r
	kind := game.KindNote
	if note.IsHold() {
		kind = game.KindHoldHead
		if r.IsHit() {
			s.holding[column] = note
			s.offsets[note] = offset
		}
	}
	s.apply(note, kind, r, offset, hitTime)
	return r
}

// Release ends a hold in column. Releases with nothing held are ignored.
func (s *Session) Release(column uint8, hitTime time.Duration) game.HitResult {
	s.Advance(hitTime)

	note, ok := s.holding[column]
	if !ok {
		return game.None
	}
	offset := s.offset(note.TimeEnd, hitTime)
	r := s.classify(offset)
	if r == game.None {
		r = game.Miss
	}
	s.endHold(note, r, offset, hitTime)
	return r
}

func (s *Session) endHold(note *game.Note, r game.HitResult, tailOffset float64, t time.Duration) {
	delete(s.holding, note.Index)
	head := s.offsets[note]
	delete(s.offsets, note)

	note.ReleaseTime = t
	note.Tail = r
	s.holdScore += s.holds.Score(head, tailOffset)
	s.apply(note, game.KindHoldTail, r, tailOffset, t)
}

// expired reports whether a late input at now could no longer be judged.
func (s *Session) expired(expected, now time.Duration) bool {
	offset := s.offset(expected, now)
	return offset > 0 && s.classify(offset) == game.None
}

// Advance resolves every object whose window has closed by now, in
// judgement order.
func (s *Session) Advance(now time.Duration) {
	for ; s.cursor < len(s.order); s.cursor++ {
		obj := s.order[s.cursor]
		if !s.expired(obj.EndTime, now) {
			return
		}
		s.resolve(obj, now)
	}
}

func (s *Session) resolve(obj game.HitObject, now time.Duration) {
	n := obj.Note
	miss := s.windows.Miss()
	switch obj.Kind {
	case game.KindNote, game.KindHoldHead:
		if !n.Judged() {
			n.Head = game.Miss
			s.apply(n, obj.Kind, game.Miss, miss, now)
		}
	case game.KindHoldTail:
		if n.Tail != game.None {
			return
		}
		if s.holding[n.Index] == n {
			// Held past the end of the tail window.
			s.endHold(n, game.Miss, miss, now)
			return
		}
		n.Tail = game.Miss
		s.apply(n, obj.Kind, game.Miss, miss, now)
	}
}

// Finish resolves everything left and returns the final score.
func (s *Session) Finish() score.Score {
	end := time.Duration(math.Round(float64(s.chart.End()) / s.cfg.Rate))
	for ; s.cursor < len(s.order); s.cursor++ {
		s.resolve(s.order[s.cursor], end)
	}
	return s.Score()
}

func (s *Session) Score() score.Score {
	sc := s.score.Score()
	sc.HoldScore = s.holdScore
	sc.Health = s.health.Health()
	return sc
}

// Replay plays inputs in order against chart and returns the final score.
func Replay(chart *game.Chart, cfg Config, inputs []game.Input) score.Score {
	s := New(chart, cfg)
	for _, in := range inputs {
		s.Input(in)
	}
	return s.Finish()
}
