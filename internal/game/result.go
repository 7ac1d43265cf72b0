package game

import "fmt"

// HitResult is the judgement assigned to a timed input. The numeric order of
// the tappable results runs from best to worst; Pool and None sit outside it.
type HitResult uint8

const (
	None HitResult = iota
	Perfect
	Great
	Good
	Ok
	Meh
	Miss
	Pool
)

// ScanOrder is the best-to-worst order classification walks through.
var ScanOrder = [...]HitResult{Perfect, Great, Good, Ok, Meh, Miss}

// Results lists every judgement that can be counted, Pool last.
var Results = [...]HitResult{Perfect, Great, Good, Ok, Meh, Miss, Pool}

var resultNames = [...]string{
	None:    "None",
	Perfect: "Perfect",
	Great:   "Great",
	Good:    "Good",
	Ok:      "Ok",
	Meh:     "Meh",
	Miss:    "Miss",
	Pool:    "Pool",
}

func (r HitResult) String() string {
	if int(r) < len(resultNames) {
		return resultNames[r]
	}
	return fmt.Sprintf("HitResult(%d)", uint8(r))
}

// Valid reports whether r is a known variant.
func (r HitResult) Valid() bool {
	return r <= Pool
}

// Index returns the position of r in Results. It panics for None or an
// unknown value, since every caller indexes a fixed-size table with it.
func (r HitResult) Index() int {
	if r == None || !r.Valid() {
		panic(fmt.Sprintf("game: no table slot for %v", r))
	}
	return int(r) - 1
}

// IsHit reports whether r keeps the combo going.
func (r HitResult) IsHit() bool {
	return r >= Perfect && r <= Meh
}

// BreaksCombo reports whether r resets the combo.
func (r HitResult) BreaksCombo() bool {
	return r == Miss || r == Pool
}

// Better reports whether r is a tighter judgement than o.
func (r HitResult) Better(o HitResult) bool {
	return r != None && (o == None || r < o)
}

// ParseHitResult maps a result name back onto its variant.
func ParseHitResult(s string) (HitResult, error) {
	for i, name := range resultNames {
		if i != int(None) && name == s {
			return HitResult(i), nil
		}
	}
	return None, fmt.Errorf("unknown hit result %q", s)
}

// ResultSet is a bitmask of permitted results.
type ResultSet uint16

// AllResults permits every countable judgement.
const AllResults = ResultSet(1<<Perfect | 1<<Great | 1<<Good | 1<<Ok | 1<<Meh | 1<<Miss | 1<<Pool)

func NewResultSet(results ...HitResult) ResultSet {
	var s ResultSet
	for _, r := range results {
		s |= 1 << r
	}
	return s
}

func (s ResultSet) Has(r HitResult) bool {
	return s&(1<<r) != 0
}

func (s ResultSet) Without(results ...HitResult) ResultSet {
	for _, r := range results {
		s &^= 1 << r
	}
	return s
}
