package parser

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sm = `#TITLE:Test;
#OFFSET:-0.100;
#BPMS:0.000=120.000;
#NOTES:
     dance-single:
     :
     Hard:
     8:
     0,0,0,0,0:
1000
0100
0020
0000
,  // measure 2
0031
0000
M000
0000
;
#NOTES:
     pump-single:
     :
     Hard:
     8:
     0,0,0,0,0:
10000
;
`

func TestParse(t *testing.T) {
	p := filepath.Join(t.TempDir(), "test.sm")
	if err := os.WriteFile(p, []byte(sm), 0o600); err != nil {
		t.Fatalf("write chart: %v", err)
	}
	var psr Parser = &DefaultParser{}
	charts, err := psr.Parse(p)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(charts) != 1 {
		t.Fatalf("got %d charts, want 1", len(charts))
	}
	c := charts[0]
	if c.Difficulty.Name != "Hard" || c.Difficulty.NKeys != 4 || c.Difficulty.BPM != 120 {
		t.Errorf("difficulty: %+v", c.Difficulty)
	}
	if c.NoteCount != 4 || c.HoldCount != 1 || c.MineCount != 1 {
		t.Errorf("counts: notes %d holds %d mines %d", c.NoteCount, c.HoldCount, c.MineCount)
	}

	expected := []struct {
		Index         uint8
		Time, TimeEnd time.Duration
		IsMine        bool
	}{
		{0, 100 * time.Millisecond, 0, false},
		{1, 600 * time.Millisecond, 0, false},
		{2, 1100 * time.Millisecond, 2100 * time.Millisecond, false},
		{3, 2100 * time.Millisecond, 0, false},
		{0, 3100 * time.Millisecond, 0, true},
	}
	if len(c.Notes) != len(expected) {
		t.Fatalf("got %d notes, want %d", len(c.Notes), len(expected))
	}
	for i, e := range expected {
		n := c.Notes[i]
		if n.Index != e.Index || n.Time != e.Time || n.TimeEnd != e.TimeEnd || n.IsMine != e.IsMine {
			t.Errorf("note %d: %+v, want %+v", i, *n, e)
		}
	}
	if c.JudgementCount() != 5 {
		t.Errorf("judgement count %d, want 5", c.JudgementCount())
	}
}

func TestParseWithoutBPMs(t *testing.T) {
	p := &DefaultParser{}
	if _, err := p.ParseBytes([]byte("#TITLE:x;\n#NOTES:\n a\n dance-single:\n :\n Hard:\n 1:\n 0:\n0000\n;")); err == nil {
		t.Error("expected error without #BPMS")
	}
}
