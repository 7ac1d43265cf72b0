package game

import (
	"time"
)

// ObjectKind separates plain taps from the two halves of a hold.
type ObjectKind uint8

const (
	KindNote ObjectKind = iota
	KindHoldHead
	KindHoldTail
)

func (k ObjectKind) String() string {
	switch k {
	case KindNote:
		return "note"
	case KindHoldHead:
		return "hold-head"
	case KindHoldTail:
		return "hold-tail"
	}
	return "unknown"
}

// IsHoldPart reports whether k belongs to a hold note.
func (k ObjectKind) IsHoldPart() bool {
	return k == KindHoldHead || k == KindHoldTail
}

type Note struct {
	Index   uint8 // The chart column
	Denom   int   // The beat length, as a denominator, 4 = 1/4 beat
	IsMine  bool
	Time    time.Duration // The time the note should be hit
	TimeEnd time.Duration // The time the note should be released, 0 for taps

	// This is state
	HitTime     time.Duration // When the note was hit
	ReleaseTime time.Duration // When a hold was let go
	Head        HitResult     // Judgement of the tap or hold head
	Tail        HitResult     // Judgement of the hold tail
}

func (note *Note) IsHold() bool {
	return note.TimeEnd > note.Time
}

// Judged reports whether the head (or tap) has been given a result.
func (note *Note) Judged() bool {
	return note.Head != None
}

// Done reports whether every part of the note has a result.
func (note *Note) Done() bool {
	if note.IsMine {
		return true
	}
	if !note.IsHold() {
		return note.Judged()
	}
	return note.Judged() && note.Tail != None
}

// Reset clears play state so a chart can be replayed.
func (note *Note) Reset() {
	note.HitTime = 0
	note.ReleaseTime = 0
	note.Head = None
	note.Tail = None
}

// Input is one key press or release in a column.
type Input struct {
	Index    uint8
	HitTime  time.Duration
	Released bool
}

// Milliseconds converts a duration to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
