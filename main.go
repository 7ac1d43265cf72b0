package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"golang.org/x/term"
	"gopkg.in/alecthomas/kingpin.v2"

	"git.lost.host/meutraa/lanejudge/internal/config"
	"git.lost.host/meutraa/lanejudge/internal/game"
	"git.lost.host/meutraa/lanejudge/internal/history"
	"git.lost.host/meutraa/lanejudge/internal/judge"
	"git.lost.host/meutraa/lanejudge/internal/parser"
	"git.lost.host/meutraa/lanejudge/internal/score"
	"git.lost.host/meutraa/lanejudge/internal/session"
	"git.lost.host/meutraa/lanejudge/internal/theme"
)

var (
	app        = kingpin.New("lanejudge", "Hit judgement and scoring for keys rhythm games")
	configFile = app.Flag("config", "Judgement config file").Short('c').Envar("LANEJUDGE_CONFIG").ExistingFile()
	database   = app.Flag("database", "Score database").Envar("LANEJUDGE_DATABASE").String()

	windowsCmd  = app.Command("windows", "Print the hit windows of a mode")
	windowsMode = windowsCmd.Flag("mode", "Judgement mode").Short('m').String()
	windowsOD   = windowsCmd.Flag("od", "Overall difficulty").Default("5").Action(setByUser(&windowsODSet)).Float64()
	windowsBPM  = windowsCmd.Flag("bpm", "Tempo for tempo-relative modes").Default("120").Action(setByUser(&windowsBPMSet)).Float64()
	windowsConv = windowsCmd.Flag("convert", "Treat the chart as converted").Bool()
	windowsAll  = windowsCmd.Flag("all", "Print every mode").Short('a').Bool()

	classifyCmd    = app.Command("classify", "Judge a single offset")
	classifyOffset = classifyCmd.Arg("offset", "Input time minus note time, in ms").Required().Float64()
	classifyOD     = classifyCmd.Flag("od", "Overall difficulty").Default("5").Action(setByUser(&classifyODSet)).Float64()
	classifyMode   = classifyCmd.Flag("mode", "Judgement mode").Short('m').String()

	replayCmd    = app.Command("replay", "Judge a recorded input file against a chart")
	replayChart  = replayCmd.Arg("chart", "Chart file (.sm)").Required().ExistingFile()
	replayInputs = replayCmd.Arg("inputs", "Input file (json)").Required().ExistingFile()
	replayIndex  = replayCmd.Flag("difficulty", "Chart index within the file").Short('d').Default("0").Int()
	replaySave   = replayCmd.Flag("save", "Store the play in the score database").Bool()
	replayVerb   = replayCmd.Flag("verbose", "Print every judgement").Short('v').Bool()

	historyCmd   = app.Command("history", "List stored plays of a chart")
	historyChart = historyCmd.Arg("chart", "Chart file (.sm)").Required().ExistingFile()
	historyIndex = historyCmd.Flag("difficulty", "Chart index within the file").Short('d').Default("0").Int()

	watchCmd = app.Command("watch", "Print the windows again whenever the config file changes")

	windowsODSet, windowsBPMSet, classifyODSet bool
)

func setByUser(set *bool) kingpin.Action {
	return func(*kingpin.ParseContext) error {
		*set = true
		return nil
	}
}

// withFlags drops the config's chart overrides that a command line flag
// replaces, so the flag value is used as given.
func withFlags(cfg *config.Config, od, bpm bool) *config.Config {
	c := *cfg
	if od {
		c.OverallDifficulty = nil
	}
	if bpm {
		c.BPM = nil
	}
	return &c
}

func main() {
	_ = godotenv.Load(".env")
	app.Version("0.3.0")
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	if err := run(cmd); nil != err {
		log.Fatalf("%+v\n", err)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); nil != err {
			return nil, err
		}
	}
	if *database != "" {
		cfg.Database = *database
	}
	return cfg, nil
}

func newTheme() theme.Theme {
	return &theme.DefaultTheme{Plain: !term.IsTerminal(int(os.Stdout.Fd()))}
}

func run(cmd string) error {
	cfg, err := loadConfig()
	if nil != err {
		return err
	}

	switch cmd {
	case windowsCmd.FullCommand():
		d := game.Difficulty{OverallDifficulty: *windowsOD, BPM: *windowsBPM, Converted: *windowsConv}
		if *windowsMode != "" {
			if cfg.Mode, err = judge.ParseMode(*windowsMode); nil != err {
				return err
			}
		}
		modes := []judge.Mode{cfg.Mode}
		if *windowsAll {
			modes = judge.Modes[:]
		}
		printWindows(os.Stdout, withFlags(cfg, windowsODSet, windowsBPMSet), d, modes)
	case classifyCmd.FullCommand():
		if *classifyMode != "" {
			if cfg.Mode, err = judge.ParseMode(*classifyMode); nil != err {
				return err
			}
		}
		d := game.Difficulty{OverallDifficulty: *classifyOD, BPM: judge.DefaultParams().BPM}
		s := withFlags(cfg, classifyODSet, false).Session(d)
		w := judge.ComputeWindows(s.Params)
		r := judge.Classify(*classifyOffset, w, s.PoolEnabled, s.Allowed)
		fmt.Printf("%v ms: %s (%v)\n", *classifyOffset, newTheme().RenderJudgement(r), w)
	case replayCmd.FullCommand():
		return replay(cfg)
	case historyCmd.FullCommand():
		return listHistory(cfg)
	case watchCmd.FullCommand():
		return watch(cfg)
	}
	return nil
}

func loadChart(file string, index int) (*game.Chart, error) {
	var psr parser.Parser = &parser.DefaultParser{}
	charts, err := psr.Parse(file)
	if nil != err {
		return nil, err
	}
	if index < 0 || index >= len(charts) {
		return nil, errors.Errorf("chart index %d out of range, %s has %d charts", index, file, len(charts))
	}
	return charts[index], nil
}

func loadInputs(file string) ([]game.Input, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, errors.Wrapf(err, "read inputs %q", file)
	}
	var inputs []game.Input
	if err := jsoniter.Unmarshal(data, &inputs); nil != err {
		return nil, errors.Wrapf(err, "parse inputs %q", file)
	}
	return inputs, nil
}

func printWindows(w io.Writer, cfg *config.Config, d game.Difficulty, modes []judge.Mode) {
	table := tablewriter.NewWriter(w)
	header := []string{"Mode"}
	for _, r := range game.Results {
		header = append(header, r.String())
	}
	table.SetHeader(header)
	var cache judge.Cache
	for _, m := range modes {
		s := cfg.Session(d)
		s.Params.Mode = m
		windows := cache.Windows(s.Params)
		row := []string{m.String()}
		for _, r := range game.Results {
			row = append(row, strconv.FormatFloat(windows.WindowFor(r), 'f', 2, 64))
		}
		table.Append(row)
	}
	table.Render()
}

func printScore(w io.Writer, th theme.Theme, sc score.Score) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Judgement", "Count"})
	for _, r := range game.Results {
		table.Append([]string{th.RenderJudgement(r), strconv.Itoa(sc.Count(r))})
	}
	table.SetFooter([]string{"Score", humanize.Comma(sc.TotalScore)})
	table.Render()

	fmt.Fprintf(w, "  Accuracy:  %6.2f%%\n", sc.Accuracy*100)
	fmt.Fprintf(w, " Max combo:  %6v\n", sc.MaxCombo)
	fmt.Fprintf(w, "Hold score:  %6v\n", humanize.Comma(int64(sc.HoldScore)))
	fmt.Fprintf(w, "      Mean:  %6.2f ms\n", sc.MeanError)
	fmt.Fprintf(w, "     Stdev:  %6.2f ms\n", sc.Stdev)
	fmt.Fprintf(w, "    Health:  %s %.0f%%\n", th.RenderHealth(sc.Health, 20), sc.Health*100)
}

func replay(cfg *config.Config) error {
	chart, err := loadChart(*replayChart, *replayIndex)
	if nil != err {
		return err
	}
	inputs, err := loadInputs(*replayInputs)
	if nil != err {
		return err
	}

	th := newTheme()
	sc := cfg.Session(chart.Difficulty)
	s := session.New(chart, sc)
	if *replayVerb {
		s.OnJudgement = func(j session.Judgement) {
			fmt.Printf("%10v  col %d  %-9s  %-12s  %+8.2f ms  combo %4d\n",
				j.Time, j.Column, j.Kind, th.RenderJudgement(j.Result), j.Offset, j.Combo)
		}
	}
	for _, in := range inputs {
		s.Input(in)
	}
	result := s.Finish()
	printScore(os.Stdout, th, result)

	if !*replaySave {
		return nil
	}
	var scorer history.Scorer = &history.DefaultScorer{}
	if err := scorer.Init(cfg.Database); nil != err {
		return err
	}
	defer scorer.Deinit()
	return scorer.Save(chart, inputs, sc, result)
}

func listHistory(cfg *config.Config) error {
	chart, err := loadChart(*historyChart, *historyIndex)
	if nil != err {
		return err
	}
	var scorer history.Scorer = &history.DefaultScorer{}
	if err := scorer.Init(cfg.Database); nil != err {
		return err
	}
	defer scorer.Deinit()

	histories, err := scorer.Load(chart)
	if nil != err {
		return err
	}
	base := cfg.Session(chart.Difficulty)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Played", "Mode", "Rate", "Score", "Accuracy", "Max combo"})
	for i := range histories {
		h := &histories[i]
		// Re-judge with the settings stored alongside the play.
		sc := scorer.Score(chart, h, base)
		table.Append([]string{
			humanize.Time(h.PlayedAt),
			h.Mode.String(),
			strconv.FormatFloat(h.Rate, 'f', 2, 64),
			humanize.Comma(sc.TotalScore),
			fmt.Sprintf("%.2f%%", sc.Accuracy*100),
			strconv.Itoa(sc.MaxCombo),
		})
	}
	table.Render()
	return nil
}

func watch(cfg *config.Config) error {
	if *configFile == "" {
		return errors.New("watch needs --config")
	}
	d := game.Difficulty{OverallDifficulty: judge.DefaultParams().OverallDifficulty, BPM: judge.DefaultParams().BPM}
	printWindows(os.Stdout, cfg, d, []judge.Mode{cfg.Mode})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return config.Watch(ctx, *configFile, func(c *config.Config) {
		printWindows(os.Stdout, c, d, []judge.Mode{c.Mode})
	})
}
