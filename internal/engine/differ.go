package engine

import (
	"context"

	"github.com/mediehuset/cueplan/internal/config"
)

// FindNew returns the source ids that should get a new intake card: ids
// occurring exactly once across all of the pipeline's inbox feeds and not
// yet represented by any card on the board.
//
// An id that appears more than once, across feeds or within one feed's raw
// match set, is excluded: a repeated id is an item that also appears
// elsewhere with more authoritative status, not a new-card signal.
//
// Any fetch failure degrades to an empty result so a partial view can never
// trigger card creation.
func (e *Engine) FindNew(ctx context.Context, pub config.Publication) []string {
	pipeline := e.cfg.PipelineFor(pub)
	log := e.log.With().Str("pipeline", pub.String()).Logger()

	occurrences := map[string]int{}
	for _, feed := range pipeline.InboxFeeds {
		ids, err := e.source.ListIDs(ctx, feed)
		if err != nil {
			log.Error().Err(err).Str("feed", feed).Msg("feed fetch failed, skipping new-article pass")
			return nil
		}
		for _, id := range ids {
			occurrences[id]++
		}
	}

	existing, err := e.board.ListCorrelationIDs(ctx, pipeline.BoardID, e.correlationFields())
	if err != nil {
		log.Error().Err(err).Msg("board fetch failed, skipping new-article pass")
		return nil
	}

	onBoard := make(map[string]bool, len(existing))
	for _, id := range existing {
		onBoard[id] = true
	}

	var fresh []string
	for id, count := range occurrences {
		if count == 1 && !onBoard[id] {
			fresh = append(fresh, id)
		}
	}
	return fresh
}

// correlationFields returns the custom-field ids recognized as correlation
// anchors. Both pipelines' fields are accepted when flattening board state.
func (e *Engine) correlationFields() []string {
	var fields []string
	if e.cfg.CorrelationFieldOnline != "" {
		fields = append(fields, e.cfg.CorrelationFieldOnline)
	}
	if e.cfg.CorrelationFieldPrint != "" {
		fields = append(fields, e.cfg.CorrelationFieldPrint)
	}
	return fields
}
