package history

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"log"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"git.lost.host/meutraa/lanejudge/internal/game"
	"git.lost.host/meutraa/lanejudge/internal/judge"
	"git.lost.host/meutraa/lanejudge/internal/score"
	"git.lost.host/meutraa/lanejudge/internal/session"
)

type DefaultScorer struct {
	db  *sql.DB
	now func() time.Time
}

type InputsCompact struct {
	Index    uint8
	Times    []time.Duration
	Releases []time.Duration `json:",omitempty"`
}

func compactInputs(inputs []game.Input) []InputsCompact {
	colCount := 0
	for _, i := range inputs {
		if int(i.Index)+1 > colCount {
			colCount = int(i.Index) + 1
		}
	}
	ins := make([]InputsCompact, colCount)
	for idx := range ins {
		ins[idx].Index = uint8(idx)
		ins[idx].Times = []time.Duration{}
	}
	for _, i := range inputs {
		if i.Released {
			ins[i.Index].Releases = append(ins[i.Index].Releases, i.HitTime)
			continue
		}
		ins[i.Index].Times = append(ins[i.Index].Times, i.HitTime)
	}
	return ins
}

// uncompactInputs restores column order; presses and releases are merged
// back into time order, presses first on a tie.
func uncompactInputs(inputs []InputsCompact) []game.Input {
	ins := []game.Input{}
	for _, i := range inputs {
		for _, t := range i.Times {
			ins = append(ins, game.Input{Index: i.Index, HitTime: t})
		}
		for _, t := range i.Releases {
			ins = append(ins, game.Input{Index: i.Index, HitTime: t, Released: true})
		}
	}
	sortInputs(ins)
	return ins
}

func sortInputs(ins []game.Input) {
	sort.SliceStable(ins, func(i, j int) bool {
		a, b := ins[i], ins[j]
		if a.HitTime != b.HitTime {
			return a.HitTime < b.HitTime
		}
		if a.Released != b.Released {
			return !a.Released
		}
		return a.Index < b.Index
	})
}

func (s *DefaultScorer) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return errors.Wrapf(err, "open score database %q", path)
	}

	initStatement := `
	create table if not exists scores
	  (
		  id integer not null primary key,
		  sum text,
		  rate real,
		  mode text,
		  pool integer,
		  inputs bytearray,
		  total integer,
		  accuracy real,
		  max_combo integer,
		  played_at integer,
		  config text
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return errors.Wrap(err, "create scores table")
	}
	// Databases written before settings were stored lack the column.
	if _, err = db.Exec("select config from scores limit 0"); nil != err {
		if _, err = db.Exec("alter table scores add column config text"); nil != err {
			db.Close()
			return errors.Wrap(err, "add config column")
		}
	}

	s.db = db
	if s.now == nil {
		s.now = time.Now
	}
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultScorer) hashChart(c *game.Chart) string {
	sum := sha256.Sum256([]byte(c.Difficulty.Section))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (s *DefaultScorer) Save(c *game.Chart, inputs []game.Input, cfg session.Config, result score.Score) error {
	data, err := jsoniter.Marshal(compactInputs(inputs))
	if nil != err {
		return errors.Wrap(err, "unable to marshal inputs")
	}
	settings, err := jsoniter.Marshal(cfg)
	if nil != err {
		return errors.Wrap(err, "unable to marshal settings")
	}
	_, err = s.db.Exec(
		"insert into scores(sum, rate, mode, pool, inputs, total, accuracy, max_combo, played_at, config) values(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		s.hashChart(c), cfg.Rate, cfg.Params.Mode.String(), cfg.PoolEnabled, data,
		result.TotalScore, result.Accuracy, result.MaxCombo, s.now().Unix(), string(settings),
	)
	return errors.Wrap(err, "unable to save score")
}

func (s *DefaultScorer) Load(c *game.Chart) ([]History, error) {
	histories := []History{}
	rows, err := s.db.Query(
		"select id, sum, rate, mode, pool, inputs, total, accuracy, max_combo, played_at, config from scores where sum = ? order by id",
		s.hashChart(c),
	)
	if nil != err {
		return histories, errors.Wrap(err, "unable to load scores")
	}
	defer rows.Close()
	for rows.Next() {
		var h History
		var mode string
		var notes []byte
		var playedAt int64
		var settings sql.NullString
		if err := rows.Scan(&h.ID, &h.Sum, &h.Rate, &mode, &h.PoolEnabled, &notes, &h.TotalScore, &h.Accuracy, &h.MaxCombo, &playedAt, &settings); nil != err {
			return histories, errors.Wrap(err, "unable to scan score row")
		}
		if h.Mode, err = judge.ParseMode(mode); nil != err {
			log.Println("skipping score with unknown mode", h.ID, err)
			continue
		}
		var ns []InputsCompact
		if err := jsoniter.Unmarshal(notes, &ns); nil != err {
			log.Println("unable to unmarshal note history", h.ID, err)
			continue
		}
		h.Inputs = uncompactInputs(ns)
		if settings.Valid && settings.String != "" {
			var cfg session.Config
			if err := jsoniter.UnmarshalFromString(settings.String, &cfg); nil != err {
				log.Println("unable to unmarshal score settings", h.ID, err)
			} else {
				h.Config = &cfg
			}
		}
		h.PlayedAt = time.Unix(playedAt, 0)
		histories = append(histories, h)
	}
	return histories, errors.WithStack(rows.Err())
}

// Score replays a history with the settings it was recorded under. cfg only
// fills in for histories stored without their settings.
func (s *DefaultScorer) Score(chart *game.Chart, history *History, cfg session.Config) score.Score {
	if nil != history.Config {
		return session.Replay(chart, *history.Config, history.Inputs)
	}
	cfg.Rate = history.Rate
	cfg.Params.Mode = history.Mode
	cfg.PoolEnabled = history.PoolEnabled
	return session.Replay(chart, cfg, history.Inputs)
}
