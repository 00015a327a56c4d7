package main

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"

	"git.lost.host/meutraa/hitbeat/internal/audio"
	"git.lost.host/meutraa/hitbeat/internal/clock"
	"git.lost.host/meutraa/hitbeat/internal/config"
	"git.lost.host/meutraa/hitbeat/internal/game"
	"git.lost.host/meutraa/hitbeat/internal/input"
	"git.lost.host/meutraa/hitbeat/internal/render"
	"git.lost.host/meutraa/hitbeat/internal/score"
	"git.lost.host/meutraa/hitbeat/internal/session"
	"git.lost.host/meutraa/hitbeat/internal/theme"
)

const (
	columnSpacing = 4
	activeFlash   = 100 * time.Millisecond
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Track is the audio a play is synced to
type Track interface {
	clock.Positioner
	Play()
	Rewind() error
}

type Program struct {
	Renderer render.Renderer
	Theme    theme.Theme
	Config   *config.Config
	Logger   *slog.Logger
	Input    *input.Reader
	Track    Track // nil plays against the wall clock
	Effects  *audio.Effects
	Title    string
	Beats    []time.Duration

	session *session.Session
	clock   clock.Clock
	seed    int64
	quit    bool

	rows, columns int
	middle        int
	top, hitRow   int
	cols          [game.NLanes]int
	sideCol       int

	active [game.NLanes]time.Time
	drawn  []int // Row each note was last drawn at, 0 when it is not on screen
}

func (p *Program) Resize() {
	p.rows, p.columns = p.Renderer.Size()
	p.middle = p.columns >> 1
	p.top = 3
	p.hitRow = p.rows - 5
	if p.hitRow <= p.top {
		p.hitRow = p.top + 1
	}
	p.cols = [game.NLanes]int{
		p.middle - columnSpacing*3,
		p.middle - columnSpacing,
		p.middle + columnSpacing,
		p.middle + columnSpacing*3,
	}
	p.sideCol = p.cols[0] - 36
	if p.sideCol < 2 {
		p.sideCol = 2
	}
}

// Start generates a fresh chart from the beats and begins playback
func (p *Program) Start(seed int64) error {
	p.seed = seed
	p.quit = false
	chart := game.NewGenerator(newRand(seed)).Generate(p.Beats)
	scorer := score.NewScorer(p.Config.Field, p.Config.Judgements)
	p.session = session.New(chart, scorer, p.Config.Grace)
	p.drawn = make([]int, len(chart.Notes))
	p.active = [game.NLanes]time.Time{}
	p.Logger.Info("starting", "title", p.Title, "seed", seed, "notes", chart.NoteCount)

	p.Resize()
	p.Renderer.Clear()
	p.RenderStatic()
	p.Renderer.Flush()
	time.Sleep(p.Config.Delay)

	// Keys pressed during the delay are not part of the song
	p.Input.Drain()

	if nil == p.Track {
		p.clock = clock.NewWall()
		return nil
	}
	if err := p.Track.Rewind(); nil != err {
		return fmt.Errorf("unable to rewind song: %w", err)
	}
	p.clock = clock.NewStream(p.Track)
	p.Track.Play()
	return nil
}

func (p *Program) Session() *session.Session {
	return p.session
}

func (p *Program) Seed() int64 {
	return p.seed
}

func (p *Program) feedbackFrames() int {
	if p.Config.FramePeriod <= 0 {
		return 1
	}
	frames := int(session.FeedbackWindow / p.Config.FramePeriod)
	if frames < 1 {
		return 1
	}
	return frames
}

// Update judges the keys pressed since the last frame and misses the notes
// that scrolled out of reach. It returns false when the player quits.
func (p *Program) Update(now time.Time) bool {
	elapsed := p.clock.Elapsed()

	for _, ev := range p.Input.Drain() {
		switch ev.Action {
		case input.Quit:
			p.quit = true
			return false
		case input.Press:
			p.active[ev.Lane] = now
			// Advancing first keeps live play and replays of it identical
			p.miss(p.session.Advance(elapsed))
			result := p.session.OnKey(game.Input{Lane: ev.Lane, Time: elapsed})
			if result.None() {
				continue
			}
			p.Logger.Debug("hit", "lane", ev.Lane, "tier", result.Judgement.Tier, "distance", result.Distance)
			p.Effects.Play(effectFor(p.Effects, result.Judgement.Tier))
			content := p.Theme.RenderJudgement(result.Judgement.Tier)
			p.Renderer.AddDecoration(p.hitRow+3, p.middle-lipgloss.Width(content)/2, content, p.feedbackFrames())
		}
	}

	p.miss(p.session.Advance(elapsed))
	return true
}

const (
	effectHit     = "hit"
	effectPerfect = "perfect"
)

// effectFor picks the sound of a hit, perfects fall back to the plain hit
func effectFor(e *audio.Effects, tier game.Tier) string {
	if tier == game.Perfect && e.Has(effectPerfect) {
		return effectPerfect
	}
	return effectHit
}

func (p *Program) miss(notes []*game.Note) {
	for _, note := range notes {
		p.Logger.Debug("miss", "lane", note.Lane, "time", note.Time)
		content := p.Theme.RenderMiss()
		p.Renderer.AddDecoration(p.hitRow+2, p.cols[note.Lane]-lipgloss.Width(content)/2, content, p.feedbackFrames())
	}
}

// row maps a field position onto the screen, spawn at the top and the
// judgement line at the hit row
func (p *Program) row(position float64) int {
	return p.top + int(math.Round(position/p.Config.Field.Line*float64(p.hitRow-p.top)))
}

func (p *Program) Render(now time.Time) {
	snap := p.session.Snapshot()

	// Clear every note drawn last frame
	for i, r := range p.drawn {
		if r != 0 {
			p.Renderer.Fill(r, p.cols[snap.Notes[i].Lane], " ")
			p.drawn[i] = 0
		}
	}

	p.RenderStatic()

	var flash [game.NLanes]bool
	for i, note := range snap.Notes {
		if note.Recent && note.Status == game.Hit {
			flash[note.Lane] = true
		}
		if note.Status != game.Pending || note.Position < 0 {
			continue
		}
		r := p.row(note.Position)
		if r < p.top || r >= p.rows {
			continue
		}
		p.Renderer.Fill(r, p.cols[note.Lane], p.Theme.RenderNote(note.Lane))
		p.drawn[i] = r
	}

	for _, lane := range game.Directions {
		active := flash[lane] || now.Sub(p.active[lane]) < activeFlash
		if active {
			p.Renderer.Fill(p.hitRow, p.cols[lane], p.Theme.RenderTarget(lane, true))
		}
	}

	tally := p.session.Tally()
	p.Renderer.Fill(p.top+1, p.sideCol, p.Theme.RenderText(fmt.Sprintf("     Score:  %6v", snap.Score)))
	p.Renderer.Fill(p.top+2, p.sideCol, p.Theme.RenderText(fmt.Sprintf("     Combo:  %6v", snap.Combo)))
	p.Renderer.Fill(p.top+3, p.sideCol, p.Theme.RenderText(fmt.Sprintf(" Max Combo:  %6v", snap.MaxCombo)))
	for i, j := range p.Config.Judgements {
		p.Renderer.Fill(p.top+5+i, p.sideCol, fmt.Sprintf("%v  %6v", p.Theme.RenderJudgement(j.Tier), tally.Counts[j.Tier]))
	}
	p.Renderer.Fill(p.top+5+len(p.Config.Judgements), p.sideCol, fmt.Sprintf("%v  %6v", p.Theme.RenderMiss(), snap.Misses))
	p.Renderer.Fill(p.top+7+len(p.Config.Judgements), p.sideCol, p.Theme.RenderText(fmt.Sprintf("     Notes:  %6v", p.session.Chart.NoteCount)))
}

// RenderStatic draws the title, the lane targets and the hit line
func (p *Program) RenderStatic() {
	p.Renderer.Fill(1, p.sideCol, p.Theme.RenderTitle(p.Title))
	for _, lane := range game.Directions {
		p.Renderer.Fill(p.hitRow, p.cols[lane], p.Theme.RenderTarget(lane, false))
	}
	p.Renderer.Fill(p.hitRow+1, p.cols[0]-2, p.Theme.RenderHitLine(p.cols[game.NLanes-1]-p.cols[0]+5))
}

func (p *Program) centre(row int, content string) {
	p.Renderer.Fill(row, p.middle-lipgloss.Width(content)/2, content)
}

// Ready shows the song and waits for the player. It returns false when they
// would rather quit.
func (p *Program) Ready() bool {
	p.Resize()
	p.Renderer.Clear()
	p.centre(p.rows/2-1, p.Theme.RenderTitle(p.Title))
	p.centre(p.rows/2+1, p.Theme.RenderText("Press space to start, esc to quit"))
	p.Renderer.Flush()

	for {
		switch p.Input.Wait().Action {
		case input.Confirm:
			return true
		case input.Quit:
			return false
		}
	}
}

// GameOver shows the final tally. It returns true to play again.
func (p *Program) GameOver() bool {
	tally := p.session.Tally()
	p.Resize()
	p.Renderer.Clear()
	mr := p.rows / 2
	p.centre(mr-4, p.Theme.RenderTitle(p.Title))
	p.centre(mr-2, p.Theme.RenderText(fmt.Sprintf("Score: %v   Max Combo: %v", tally.Score, tally.MaxCombo)))
	for i, j := range p.Config.Judgements {
		p.centre(mr+i, fmt.Sprintf("%v %v", p.Theme.RenderJudgement(j.Tier), tally.Counts[j.Tier]))
	}
	p.centre(mr+len(p.Config.Judgements), fmt.Sprintf("%v %v", p.Theme.RenderMiss(), tally.Misses))
	p.centre(mr+len(p.Config.Judgements)+2, p.Theme.RenderText("Press r to play again, any other key to return"))
	p.Renderer.Flush()

	p.Logger.Info("finished", "title", p.Title, "seed", p.seed, "quit", p.quit, "score", tally.Score, "max_combo", tally.MaxCombo, "misses", tally.Misses)
	return p.Input.Next().Rune == 'r'
}

// Run plays until the player quits or declines another go
func (p *Program) Run() error {
	if err := p.Renderer.Init(); nil != err {
		return fmt.Errorf("unable to initialise terminal: %w", err)
	}
	defer func() {
		// Restore the terminal state
		p.Renderer.Deinit()
	}()

	seed := p.Config.Seed
	for {
		if !p.Ready() {
			return nil
		}
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		if err := p.Start(seed); nil != err {
			return err
		}

		p.Renderer.RenderLoop(p.Config.FramePeriod, func(now time.Time) bool {
			if !p.Update(now) {
				return false
			}
			p.Render(now)
			return !p.session.IsComplete()
		})

		if nil != p.Track {
			if err := p.Track.Rewind(); nil != err {
				p.Logger.Warn("unable to stop song", "err", err)
			}
		}
		// Quitting mid-song still shows the tally so far
		if !p.GameOver() {
			return nil
		}
		seed = 0
	}
}
