package testdata

import (
	jsoniter "github.com/json-iterator/go"

	"git.lost.host/meutraa/lanejudge/internal/game"
)

// Two taps on the same beat, a hold, a tap ending with the hold, a late tap
// and a mine.
const data = `{
	"Notes": [
		{"Index": 1, "Denom": 4, "Time": 1000000000},
		{"Index": 0, "Denom": 4, "Time": 1000000000},
		{"Index": 2, "Denom": 8, "Time": 1500000000, "TimeEnd": 2000000000},
		{"Index": 3, "Denom": 4, "Time": 2000000000},
		{"Index": 0, "Denom": 4, "Time": 2500000000},
		{"Index": 1, "Denom": 4, "Time": 2600000000, "IsMine": true}
	],
	"NoteCount": 5,
	"HoldCount": 1,
	"MineCount": 1,
	"Difficulty": {
		"Name": "Test",
		"NKeys": 4,
		"OverallDifficulty": 5,
		"DrainRate": 5,
		"BPM": 120
	}
}`

func GetChart() (*game.Chart, error) {
	var chart game.Chart
	if err := jsoniter.Unmarshal([]byte(data), &chart); nil != err {
		return nil, err
	}
	return &chart, nil
}
