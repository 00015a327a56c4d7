package config

import (
	"fmt"
	"os"
	"time"

	"git.lost.host/meutraa/hitbeat/internal/game"
	"gopkg.in/yaml.v3"
)

// Profile overrides the tuning of the field and judgements. Anything left
// out keeps the value from the command line.
type Profile struct {
	ScrollSpeed *float64        `yaml:"scroll_speed"`
	Line        *float64        `yaml:"line"`
	Grace       *time.Duration  `yaml:"grace"`
	Judgements  []ProfileWindow `yaml:"judgements"`
}

type ProfileWindow struct {
	Tier     string  `yaml:"tier"`
	Distance float64 `yaml:"distance"`
	Reward   int     `yaml:"reward"`
	Name     string  `yaml:"name"`
}

var tiers = map[string]game.Tier{
	"perfect": game.Perfect,
	"good":    game.Good,
}

func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if nil != err {
		return nil, fmt.Errorf("unable to read profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); nil != err {
		return nil, fmt.Errorf("unable to parse profile %v: %w", path, err)
	}
	return &p, nil
}

func (p *Profile) Apply(c *Config) error {
	if nil != p.ScrollSpeed {
		c.Field.ScrollSpeed = *p.ScrollSpeed
	}
	if nil != p.Line {
		c.Field.Line = *p.Line
	}
	if nil != p.Grace {
		c.Grace = *p.Grace
	}
	if len(p.Judgements) == 0 {
		return nil
	}

	js := make([]game.Judgement, 0, len(p.Judgements))
	for _, w := range p.Judgements {
		tier, ok := tiers[w.Tier]
		if !ok {
			return fmt.Errorf("unknown tier %q in profile", w.Tier)
		}
		name := w.Name
		if name == "" {
			name = game.DefaultJudgements[tier-1].Name
		}
		js = append(js, game.Judgement{Tier: tier, Distance: w.Distance, Reward: w.Reward, Name: name})
	}
	c.Judgements = js
	return nil
}
