package parser

import (
	"math"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/lanejudge/internal/game"
)

// Charts in this format carry no judgement difficulty, so every chart starts
// from the middle of the range and config overrides it.
const (
	defaultOverallDifficulty = 5
	defaultDrainRate         = 5
)

type DefaultParser struct{}

func (p *DefaultParser) getSecondsPerNote(rates []game.BPM, currentBeat float64, bpn float64) (float64, float64) {
	sel := float64(0.0)
	for _, bpm := range rates {
		if currentBeat >= bpm.StartingBeat {
			sel = bpm.Value
		} else {
			break
		}
	}
	secondsPerBeat := 60.0 / sel
	return sel, bpn * secondsPerBeat
}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note

func (p *DefaultParser) mapToNote(ch byte) bool {
	return ch == '1' || ch == '2' || ch == '4' || ch == 'M'
}

func toDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * 1000 * 1000 * 1000))
}

func (p *DefaultParser) Parse(file string) ([]*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, errors.Wrapf(err, "read chart %q", file)
	}
	return p.ParseBytes(data)
}

func (p *DefaultParser) ParseBytes(data []byte) ([]*game.Chart, error) {
	str := strings.ReplaceAll(string(data), "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]
	difficulties := []game.Difficulty{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			return nil, errors.New("truncated #NOTES section")
		}
		chartType := strings.TrimSpace(lines[1])
		chartType = strings.TrimSuffix(chartType, ":")
		nKeys, ok := game.NKeyMap[chartType]
		if !ok {
			continue
		}
		difficulties = append(difficulties, game.Difficulty{
			Name:              strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
			Msd:               strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
			Section:           lines[6],
			NKeys:             nKeys,
			OverallDifficulty: defaultOverallDifficulty,
			DrainRate:         defaultDrainRate,
		})
	}

	offset := 0.0
	bpms := []game.BPM{}

	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimSpace(mdl)
		mdl = strings.TrimPrefix(mdl, "#")
		if strings.HasPrefix(mdl, "OFFSET:") {
			mdl = strings.TrimPrefix(mdl, "OFFSET:")
			mdl = strings.TrimSuffix(mdl, ";")
			offs, err := strconv.ParseFloat(mdl, 64)
			if nil != err {
				return nil, errors.Wrap(err, "parse #OFFSET")
			}
			offset = -offs
		} else if strings.HasPrefix(mdl, "BPMS:") {
			mdl = strings.TrimPrefix(mdl, "BPMS:")
			mdl = strings.ReplaceAll(mdl, "\n", "")
			bbs := strings.Split(strings.TrimSuffix(mdl, ";"), ",")
			for _, bpm := range bbs {
				as := strings.Split(bpm, "=")
				if len(as) != 2 {
					return nil, errors.Errorf("malformed #BPMS entry %q", bpm)
				}
				sb, err := strconv.ParseFloat(strings.TrimSpace(as[0]), 64)
				if nil != err {
					return nil, errors.Wrap(err, "parse #BPMS beat")
				}
				bbbs, err := strconv.ParseFloat(strings.TrimSpace(as[1]), 64)
				if nil != err {
					return nil, errors.Wrap(err, "parse #BPMS value")
				}
				bpms = append(bpms, game.BPM{
					StartingBeat: sb,
					Value:        bbbs,
				})
			}
		}
	}
	if len(bpms) == 0 {
		return nil, errors.New("chart has no #BPMS")
	}

	charts := []*game.Chart{}
	for _, difficulty := range difficulties {
		// Start time of first note
		seconds := offset
		var currentBeat float64 = 0.0

		notes := []*game.Note{}
		var noteCount, mineCount, holdCount int64

		blocks := strings.Split(difficulty.Section, "\n,")

		for _, block := range blocks {
			lines := []string{}
			bls := strings.Split(block, "\n")
			for _, l := range bls {
				if strings.HasPrefix(l, " ") || strings.HasPrefix(l, "//") || strings.Contains(l, "-") {
					continue
				}
				l = strings.TrimSpace(l)
				l = strings.TrimSuffix(l, ";")
				if len(l) >= int(difficulty.NKeys) {
					lines = append(lines, l)
				}
			}
			if len(lines) == 0 {
				continue
			}

			// Beat count is 4 per block
			lineCount := int64(len(lines))
			beatsPerNote := 4.0 / float64(lineCount) // 1/4, 1/8, 1/16, 1/24 etc

			// for each note line in a block
			for i, line := range lines {
				chs := []byte(line)
				r := big.NewRat(int64(i*4), lineCount)
				denom := r.Denom().Int64()
				_, secondsPerNote := p.getSecondsPerNote(bpms, currentBeat, beatsPerNote)

				for col, c := range chs[:difficulty.NKeys] {
					if p.mapToNote(c) {
						switch c {
						case 'M':
							mineCount++
						case '2', '4':
							holdCount++
							noteCount++
						default:
							noteCount++
						}
						notes = append(notes, &game.Note{
							Index:  uint8(col),
							Denom:  int(denom),
							IsMine: c == 'M',
							Time:   toDuration(seconds),
						})
					} else if c == '3' {
						// This is a release note of a previous head
						// Find the last head in this column and
						// add this as the endtime to it
						for j := len(notes) - 1; j >= 0; j-- {
							note := notes[j]
							if int(note.Index) != col || note.IsMine {
								continue
							}
							note.TimeEnd = toDuration(seconds)
							break
						}
					}
				}

				seconds += secondsPerNote
				currentBeat += beatsPerNote
			}
		}

		difficulty.BPM = bpms[0].Value
		charts = append(charts, &game.Chart{
			Notes:      notes,
			NoteCount:  noteCount,
			HoldCount:  holdCount,
			MineCount:  mineCount,
			Difficulty: difficulty,
		})
	}

	return charts, nil
}
