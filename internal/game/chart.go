package game

import (
	"sort"
	"time"
)

type Chart struct {
	Notes      []*Note
	NoteCount  int64
	HoldCount  int64
	MineCount  int64
	Difficulty Difficulty
}

// HitObject is one judgeable part of a note: a tap, a hold head or a hold tail.
type HitObject struct {
	Note    *Note
	Kind    ObjectKind
	Column  uint8
	Time    time.Duration
	EndTime time.Duration
}

// HitObjects expands the chart into judgeable objects, skipping mines.
func (c *Chart) HitObjects() []HitObject {
	objects := make([]HitObject, 0, len(c.Notes)+int(c.HoldCount))
	for _, n := range c.Notes {
		if n.IsMine {
			continue
		}
		if !n.IsHold() {
			objects = append(objects, HitObject{Note: n, Kind: KindNote, Column: n.Index, Time: n.Time, EndTime: n.Time})
			continue
		}
		objects = append(objects,
			HitObject{Note: n, Kind: KindHoldHead, Column: n.Index, Time: n.Time, EndTime: n.Time},
			HitObject{Note: n, Kind: KindHoldTail, Column: n.Index, Time: n.TimeEnd, EndTime: n.TimeEnd},
		)
	}
	return objects
}

// JudgementCount is the number of judgements a full play of the chart produces.
func (c *Chart) JudgementCount() int {
	count := 0
	for _, n := range c.Notes {
		switch {
		case n.IsMine:
		case n.IsHold():
			count += 2
		default:
			count++
		}
	}
	return count
}

// SortForJudgement orders objects by end time, then taps before anything
// else, then column. Combo grows in this order when several lanes resolve at
// the same timestamp.
func SortForJudgement(objects []HitObject) {
	sort.SliceStable(objects, func(i, j int) bool {
		a, b := objects[i], objects[j]
		if a.EndTime != b.EndTime {
			return a.EndTime < b.EndTime
		}
		an, bn := a.Kind == KindNote, b.Kind == KindNote
		if an != bn {
			return an
		}
		return a.Column < b.Column
	})
}

// JudgementOrder returns the chart's objects in judgement order.
func (c *Chart) JudgementOrder() []HitObject {
	objects := c.HitObjects()
	SortForJudgement(objects)
	return objects
}

// Clone deep copies the notes so play state can be applied without touching c.
func (c *Chart) Clone() *Chart {
	nn := make([]*Note, len(c.Notes))
	for i, n := range c.Notes {
		nnn := *n
		nn[i] = &nnn
	}
	return &Chart{
		Notes:      nn,
		NoteCount:  c.NoteCount,
		HoldCount:  c.HoldCount,
		MineCount:  c.MineCount,
		Difficulty: c.Difficulty,
	}
}

// End is the latest time any note finishes.
func (c *Chart) End() time.Duration {
	var end time.Duration
	for _, n := range c.Notes {
		if n.Time > end {
			end = n.Time
		}
		if n.TimeEnd > end {
			end = n.TimeEnd
		}
	}
	return end
}
