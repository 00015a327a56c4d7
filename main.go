package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.lost.host/meutraa/hitbeat/internal/audio"
	"git.lost.host/meutraa/hitbeat/internal/beats"
	"git.lost.host/meutraa/hitbeat/internal/config"
	"git.lost.host/meutraa/hitbeat/internal/game"
	"git.lost.host/meutraa/hitbeat/internal/input"
	"git.lost.host/meutraa/hitbeat/internal/render"
	"git.lost.host/meutraa/hitbeat/internal/score"
	"git.lost.host/meutraa/hitbeat/internal/session"
	"git.lost.host/meutraa/hitbeat/internal/theme"
)

const (
	defaultTitle = "Default Beat Pattern"
	defaultSum   = "default"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func openLogger(path string, debug bool) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if nil != err {
		return nil, nil, fmt.Errorf("unable to open log file: %w", err)
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

// findSong resolves a song argument to a file. Directories are walked for
// the first file a detector understands.
func findSong(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	info, err := os.Stat(p)
	if nil != err {
		return "", err
	}
	if !info.IsDir() {
		return p, nil
	}

	var song string
	if err := filepath.Walk(p, func(path string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		if song == "" && !info.IsDir() && beats.Supported(path) {
			song = path
			return filepath.SkipDir
		}
		return nil
	}); nil != err {
		return "", fmt.Errorf("unable to walk song directory: %w", err)
	}
	if song == "" {
		return "", errors.New("unable to find a .mp3/.ogg/.wav/.flac/.mid file in given directory")
	}
	return song, nil
}

func songSum(song string) (string, error) {
	if song == "" {
		return defaultSum, nil
	}
	return beats.Sum(song)
}

func run(args []string) error {
	cfg, err := config.Parse(args)
	if nil != err {
		return err
	}

	logger, logFile, err := openLogger(cfg.Log, cfg.Debug)
	if nil != err {
		return err
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	song, err := findSong(cfg.Song)
	if nil != err {
		return err
	}

	source := beats.NewSource(logger)
	if !cfg.NoCache {
		cache, err := beats.OpenCache(cfg.Cache, logger)
		if nil != err {
			logger.Warn("onset cache unavailable", "path", cfg.Cache, "err", err)
		} else {
			defer cache.Close()
			source.Audio = cache.Wrap("onset", source.Audio)
			source.MIDI = cache.Wrap("midi", source.MIDI)
		}
	}

	switch cfg.Command {
	case config.CommandBeats:
		return printBeats(os.Stdout, source.DetectBeats(song))
	case config.CommandReplay:
		return replay(os.Stdout, cfg, source, song)
	}
	return play(cfg, logger, source, song)
}

func printBeats(w io.Writer, bs []time.Duration) error {
	for i, b := range bs {
		if _, err := fmt.Fprintf(w, "%4v  %9.3f\n", i, b.Seconds()); nil != err {
			return err
		}
	}
	return nil
}

func replay(w io.Writer, cfg *config.Config, source *beats.Source, song string) error {
	history, err := score.LoadHistory(cfg.Trace)
	if nil != err {
		return err
	}
	sum, err := songSum(song)
	if nil != err {
		return err
	}
	if sum != history.Sum {
		return fmt.Errorf("%v was not recorded against this song", cfg.Trace)
	}

	s := replaySession(cfg, source.DetectBeats(song), history)
	tally := s.Tally()
	fmt.Fprintf(w, "Score: %v\nMax Combo: %v\n", tally.Score, tally.MaxCombo)
	for _, j := range cfg.Judgements {
		fmt.Fprintf(w, "%v %v\n", j.Name, tally.Counts[j.Tier])
	}
	fmt.Fprintf(w, "MISS! %v\n", tally.Misses)
	return nil
}

// replaySession regenerates the recorded chart and runs the inputs through it
// until every note has been resolved
func replaySession(cfg *config.Config, bs []time.Duration, history *score.History) *session.Session {
	chart := game.NewGenerator(newRand(history.Seed)).Generate(bs)
	s := session.New(chart, score.NewScorer(cfg.Field, cfg.Judgements), cfg.Grace)
	session.Replay(s, history.Inputs, chart.Last()+cfg.Field.TravelTime()+cfg.Grace+time.Second)
	return s
}

// loadEffects reads the optional hit sounds, which need the speaker a song
// initialised
func loadEffects(dir string, player *audio.Player, logger *slog.Logger) *audio.Effects {
	if dir == "" {
		return nil
	}
	effects := audio.NewEffects(player.SampleRate())
	for _, name := range []string{effectHit, effectPerfect} {
		path := filepath.Join(dir, name+".wav")
		if _, err := os.Stat(path); nil != err {
			continue
		}
		if err := effects.Load(name, path); nil != err {
			logger.Warn("unable to load effect", "path", path, "err", err)
		}
	}
	return effects
}

func play(cfg *config.Config, logger *slog.Logger, source *beats.Source, song string) error {
	title := defaultTitle
	if song != "" {
		title = filepath.Base(song)
	}

	in, err := input.Open(cfg)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := in.Close(); nil != err {
			logger.Warn("unable to close keyboard", "err", err)
		}
	}()

	p := &Program{
		Renderer: &render.DefaultRenderer{},
		Theme:    &theme.DefaultTheme{},
		Config:   cfg,
		Logger:   logger,
		Input:    in,
		Title:    title,
		Beats:    source.DetectBeats(song),
	}

	// MIDI files have no audio of their own, so they play against the wall clock
	if song != "" && audio.Supported(song) {
		player, err := audio.NewPlayer(song)
		if nil != err {
			logger.Warn("unable to play song, playing silently", "path", song, "err", err)
		} else {
			defer player.Close()
			p.Track = player
			p.Effects = loadEffects(cfg.Effects, player, logger)
		}
	}

	if err := p.Run(); nil != err {
		return err
	}

	if cfg.Record == "" || nil == p.Session() {
		return nil
	}
	sum, err := songSum(song)
	if nil != err {
		return err
	}
	history := score.History{
		Sum:    sum,
		Seed:   p.Seed(),
		Inputs: p.Session().Inputs(),
	}
	return history.Save(cfg.Record)
}
