package score

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"git.lost.host/meutraa/hitbeat/internal/game"
)

// History is everything needed to replay a performance: the beats it was
// generated from (by sum), the lane seed, and every input in order.
type History struct {
	Sum    string
	Seed   int64
	Inputs []game.Input
}

type InputsCompact struct {
	Lane  game.Direction  `json:"lane"`
	Times []time.Duration `json:"times"`
}

type historyFile struct {
	Sum    string          `json:"sum"`
	Seed   int64           `json:"seed"`
	Inputs []InputsCompact `json:"inputs"`
}

func compactInputs(inputs []game.Input) []InputsCompact {
	ins := make([]InputsCompact, game.NLanes)
	for i := range ins {
		ins[i].Lane = game.Direction(i)
		ins[i].Times = []time.Duration{}
	}
	for _, i := range inputs {
		if !i.Lane.Valid() {
			continue
		}
		ins[i.Lane].Times = append(ins[i.Lane].Times, i.Time)
	}
	return ins
}

func uncompactInputs(inputs []InputsCompact) []game.Input {
	ins := []game.Input{}
	for _, i := range inputs {
		for _, t := range i.Times {
			ins = append(ins, game.Input{Lane: i.Lane, Time: t})
		}
	}
	sort.SliceStable(ins, func(i, j int) bool { return ins[i].Time < ins[j].Time })
	return ins
}

func (h *History) Save(path string) error {
	data, err := json.Marshal(historyFile{
		Sum:    h.Sum,
		Seed:   h.Seed,
		Inputs: compactInputs(h.Inputs),
	})
	if nil != err {
		return fmt.Errorf("unable to marshal inputs: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); nil != err {
		return fmt.Errorf("unable to write history: %w", err)
	}
	return nil
}

func LoadHistory(path string) (*History, error) {
	data, err := os.ReadFile(path)
	if nil != err {
		return nil, fmt.Errorf("unable to read history: %w", err)
	}
	var hf historyFile
	if err := json.Unmarshal(data, &hf); nil != err {
		return nil, fmt.Errorf("unable to unmarshal history %v: %w", path, err)
	}
	return &History{
		Sum:    hf.Sum,
		Seed:   hf.Seed,
		Inputs: uncompactInputs(hf.Inputs),
	}, nil
}
