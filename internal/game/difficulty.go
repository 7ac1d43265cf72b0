package game

type Difficulty struct {
	Name    string
	Msd     string
	Section string
	NKeys   uint8

	OverallDifficulty float64
	DrainRate         float64
	BPM               float64 // Tempo of the first timing section
	Converted         bool
}

var NKeyMap = map[string]uint8{
	"dance-single": 4,
	"dance-solo":   6,
	"dance-double": 8,
}
