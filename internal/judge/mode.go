package judge

import (
	"fmt"
	"strings"
)

// Mode selects the formula family that produces a HitWindowSet.
type Mode uint8

const (
	Lazer Mode = iota
	Classic
	O2Jam
	EZ2AC
	IIDX
	Melody
	Stepmania
)

// Family groups modes that share a window formula.
type Family uint8

const (
	FamilyInterpolated Family = iota
	FamilyClassic
	FamilyTempo
	FamilyTable
)

type profile struct {
	name   string
	family Family

	// Perfect..Miss, with an optional seventh Pool entry. FamilyTable only.
	windows []float64

	// Health change per result in thousandths, Perfect..Pool. Unused by Lazer.
	health [7]int
}

var profiles = [...]profile{
	Lazer: {
		name:   "lazer",
		family: FamilyInterpolated,
	},
	Classic: {
		name:   "classic",
		family: FamilyClassic,
		health: [7]int{8, 8, 4, 0, -20, -60, -40},
	},
	O2Jam: {
		name:   "o2jam",
		family: FamilyTempo,
		health: [7]int{3, 3, 2, 2, -10, -50, -30},
	},
	EZ2AC: {
		name:    "ez2ac",
		family:  FamilyTable,
		windows: []float64{18, 32, 64, 85, 110, 130, 160},
		health:  [7]int{5, 4, 2, 0, -15, -40, -25},
	},
	IIDX: {
		name:    "iidx",
		family:  FamilyTable,
		windows: []float64{16.67, 33.33, 116.67, 150, 200, 250, 333.33},
		health:  [7]int{16, 16, 8, 0, -20, -60, -30},
	},
	Melody: {
		name:    "melody",
		family:  FamilyTable,
		windows: []float64{20, 40, 60, 80, 100, 120},
		health:  [7]int{6, 5, 3, 0, -15, -50, -30},
	},
	Stepmania: {
		name:    "stepmania",
		family:  FamilyTable,
		windows: []float64{22.5, 45, 90, 135, 180, 180},
		health:  [7]int{8, 8, 4, 0, -40, -80, -40},
	},
}

// Modes lists every known mode in declaration order.
var Modes = [...]Mode{Lazer, Classic, O2Jam, EZ2AC, IIDX, Melody, Stepmania}

func (m Mode) profile() *profile {
	if int(m) >= len(profiles) {
		panic(fmt.Sprintf("judge: unknown judgement mode %d", uint8(m)))
	}
	return &profiles[m]
}

func (m Mode) String() string {
	if int(m) >= len(profiles) {
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
	return profiles[m].name
}

// Family panics for an unknown mode.
func (m Mode) Family() Family {
	return m.profile().family
}

// HealthRow returns the per-result health table of a table-driven mode.
func (m Mode) HealthRow() [7]int {
	return m.profile().health
}

// ParseMode accepts a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(profiles[m].name, s) {
			return m, nil
		}
	}
	return Lazer, fmt.Errorf("unknown judgement mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
