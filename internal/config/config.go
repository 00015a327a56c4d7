package config

import (
	"errors"
	"fmt"
	"time"

	"git.lost.host/meutraa/hitbeat/internal/game"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	ErrThresholds = errors.New("judgement windows must grow strictly from the tightest")
	ErrKeys       = errors.New("keys must be four distinct characters")
	ErrField      = errors.New("scroll speed and line must be positive")
)

const (
	CommandPlay   = "play"
	CommandReplay = "replay"
	CommandBeats  = "beats"
)

type Config struct {
	Command string
	Song    string // File or directory, empty for the built-in beats
	Trace   string // Recorded inputs for replay

	Delay       time.Duration
	FramePeriod time.Duration
	Grace       time.Duration
	Field       game.Field
	Judgements  []game.Judgement
	Seed        int64 // 0 picks a seed from the clock
	Keys        []rune

	Cache   string
	NoCache bool
	Log     string
	Debug   bool
	Profile string
	Record  string
	Effects string // Directory holding hit.wav and perfect.wav

	keys          string
	perfect, good float64
}

// Parse reads the command line. args excludes the program name.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}
	app := kingpin.New("hitbeat", "Hit the beat: a terminal rhythm game generated from your music")
	app.Version("0.1.0")

	app.Flag("delay", "Start delay").Default("1.5s").Short('d').DurationVar(&cfg.Delay)
	app.Flag("frame-period", "Render frame period").Default("16ms").Short('p').DurationVar(&cfg.FramePeriod)
	app.Flag("grace", "Time after the last note before the song ends").Default("5s").DurationVar(&cfg.Grace)
	app.Flag("scroll-speed", "Scroll speed in field units per second").Default("300").Short('s').Float64Var(&cfg.Field.ScrollSpeed)
	app.Flag("line", "Distance from spawn to the judgement line").Default("500").Float64Var(&cfg.Field.Line)
	app.Flag("perfect", "Perfect window, in field units").Default("30").Float64Var(&cfg.perfect)
	app.Flag("good", "Good window, in field units").Default("50").Float64Var(&cfg.good)
	app.Flag("seed", "Lane seed, 0 for random").Default("0").Int64Var(&cfg.Seed)
	app.Flag("keys", "Alternative keys for left, up, down, right").Default("dfjk").Short('k').StringVar(&cfg.keys)
	app.Flag("cache", "Onset cache database").Default("./onsets.db").StringVar(&cfg.Cache)
	app.Flag("no-cache", "Always analyse songs").BoolVar(&cfg.NoCache)
	app.Flag("log", "Log file").Default("./hitbeat.log").StringVar(&cfg.Log)
	app.Flag("debug", "Debug logging").BoolVar(&cfg.Debug)
	app.Flag("profile", "YAML tuning profile").ExistingFileVar(&cfg.Profile)
	app.Flag("effects", "Directory with hit.wav and perfect.wav").ExistingDirVar(&cfg.Effects)

	play := app.Command(CommandPlay, "Play a song").Default()
	play.Arg("song", "Song file or directory").ExistingFileOrDirVar(&cfg.Song)
	play.Flag("record", "Write the inputs of the last play to this file").Short('o').StringVar(&cfg.Record)

	replay := app.Command(CommandReplay, "Score a recorded play without audio")
	replay.Arg("trace", "Recorded inputs").Required().ExistingFileVar(&cfg.Trace)
	replay.Arg("song", "Song the inputs were recorded against").ExistingFileOrDirVar(&cfg.Song)

	beats := app.Command(CommandBeats, "Print the beats detected in a song")
	beats.Arg("song", "Song file or directory").ExistingFileOrDirVar(&cfg.Song)

	cmd, err := app.Parse(args)
	if nil != err {
		return nil, err
	}
	cfg.Command = cmd
	cfg.Keys = []rune(cfg.keys)
	cfg.Judgements = []game.Judgement{
		{Tier: game.Perfect, Distance: cfg.perfect, Reward: 100, Name: "PERFECT!"},
		{Tier: game.Good, Distance: cfg.good, Reward: 50, Name: "GOOD!"},
	}

	if cfg.Profile != "" {
		profile, err := LoadProfile(cfg.Profile)
		if nil != err {
			return nil, err
		}
		if err := profile.Apply(cfg); nil != err {
			return nil, err
		}
	}

	if err := cfg.Validate(); nil != err {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Field.ScrollSpeed <= 0 || c.Field.Line <= 0 {
		return ErrField
	}
	if len(c.Judgements) == 0 || c.Judgements[0].Distance <= 0 {
		return ErrThresholds
	}
	for i := 1; i < len(c.Judgements); i++ {
		if c.Judgements[i].Distance <= c.Judgements[i-1].Distance {
			return fmt.Errorf("%v: %w", c.Judgements[i].Name, ErrThresholds)
		}
	}
	if len(c.Keys) != game.NLanes {
		return ErrKeys
	}
	for i, a := range c.Keys {
		for _, b := range c.Keys[i+1:] {
			if a == b {
				return ErrKeys
			}
		}
	}
	return nil
}

// KeyLane maps one of the alternative keys to its lane
func (c *Config) KeyLane(r rune) (game.Direction, bool) {
	for i, k := range c.Keys {
		if r == k {
			return game.Direction(i), true
		}
	}
	return 0, false
}
