package remux

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"remuxer/internal/logging"
	"remuxer/internal/media/mkvmerge"
	"remuxer/internal/services"
	"remuxer/internal/tracks"
)

// Classify probes the container and pairs its tracks with sidecars from
// earlier runs. A probe that yields no document is fatal.
func (p *Processor) Classify(ctx context.Context, path string) (tracks.Inventory, error) {
	ctx, logger := p.stageContext(ctx, "classify")

	ident, err := mkvmerge.Identify(context.WithoutCancel(ctx), p.run, p.tools.MkvMerge, path)
	if err != nil {
		marker := services.ErrExternalTool
		if errors.Is(err, mkvmerge.ErrNoIdentification) || errors.Is(err, mkvmerge.ErrMalformed) {
			marker = services.ErrValidation
		}
		return tracks.Inventory{}, sessionError(ErrInventoryUnavailable, marker,
			"classify", "probe", "mkvmerge returned no track inventory", err)
	}
	for _, msg := range ident.Errors {
		logging.WarnWithContext(logger, "probe reported an error", "probe_error",
			logging.String("detail", msg),
			logging.String(logging.FieldErrorHint, "inspect the container with mkvmerge -i"),
			logging.String(logging.FieldImpact, "track list may be incomplete"),
		)
	}
	for _, msg := range ident.Warnings {
		logger.Debug("probe warning", logging.String("detail", msg))
	}

	inv := tracks.Inventory{
		Path:      path,
		Container: ident.Container.Type,
		Tracks:    convertTracks(ident.Tracks),
	}
	sidecars, err := discoverSidecars(path)
	if err != nil {
		logging.WarnWithContext(logger, "sidecar discovery failed", "sidecar_discovery_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check directory permissions"),
			logging.String(logging.FieldImpact, "existing sidecars will be produced again"),
		)
	}
	inv.Sidecars = sidecars

	logger.Debug("container classified",
		logging.String("container", inv.Container),
		logging.Int("tracks", len(inv.Tracks)),
		logging.Int("sidecars", len(inv.Sidecars)),
		logging.Int("attachments", len(ident.Attachments)),
	)
	return inv, nil
}

func convertTracks(in []mkvmerge.Track) []tracks.Track {
	out := make([]tracks.Track, 0, len(in))
	for _, t := range in {
		var kind tracks.Kind
		switch t.Type {
		case mkvmerge.TypeAudio:
			kind = tracks.Audio
		case mkvmerge.TypeSubtitles:
			kind = tracks.Subtitle
		default:
			continue
		}
		out = append(out, tracks.Track{
			ID:       t.ID,
			Kind:     kind,
			Codec:    t.Codec,
			Language: t.Properties.Language,
			Name:     tracks.SanitizeName(t.Properties.TrackName),
			Default:  tracks.FromBool(t.Properties.DefaultTrack),
			Forced:   tracks.FromBool(t.Properties.ForcedTrack),
			Original: tracks.FromBool(t.Properties.FlagOriginal),
		})
	}
	return out
}

// discoverSidecars lists files beside the container that follow the sidecar
// naming convention, in directory order. Sidecars of a sibling container
// whose name extends this one are left to that container.
func discoverSidecars(containerPath string) ([]tracks.Track, error) {
	dir := filepath.Dir(containerPath)
	base := tracks.ContainerBase(containerPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	bases := []string{base}
	for _, entry := range entries {
		if !entry.IsDir() && tracks.IsContainerFile(entry.Name()) {
			bases = append(bases, tracks.ContainerBase(entry.Name()))
		}
	}
	var out []tracks.Track
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		t, ok := tracks.ParseSidecarName(base, entry.Name())
		if !ok {
			continue
		}
		if owner, _ := tracks.SidecarOwner(entry.Name(), bases); owner != base {
			continue
		}
		t.FilePath = filepath.Join(dir, entry.Name())
		out = append(out, t)
	}
	return out, nil
}
