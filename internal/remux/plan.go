package remux

import (
	"context"

	"remuxer/internal/policy"
	"remuxer/internal/staging"
	"remuxer/internal/tracks"
)

// Plan is what a session would do for a container, without running any
// stage past classification.
type Plan struct {
	Inventory  tracks.Inventory `json:"inventory"`
	Sets       policy.WorkSets  `json:"work_sets"`
	Demux      []tracks.Track   `json:"demux,omitempty"`
	Detached   []tracks.Track   `json:"detached,omitempty"`
	ScratchDir string           `json:"scratch_dir"`
}

// NeedsWork reports whether Process would run any stage after the decision.
func (pl Plan) NeedsWork() bool {
	return !pl.Sets.Empty() || len(pl.Detached) > 0
}

// Plan classifies the container and evaluates the policy against it.
func (p *Processor) Plan(ctx context.Context, path string) (Plan, error) {
	inv, err := p.Classify(ctx, path)
	if err != nil {
		return Plan{}, err
	}
	sets := policy.Decide(inv, p.policy)
	return Plan{
		Inventory:  inv,
		Sets:       sets,
		Demux:      sets.ExtractionTargets(),
		Detached:   policy.Detached(inv, p.policy),
		ScratchDir: staging.ScratchDir(path),
	}, nil
}
