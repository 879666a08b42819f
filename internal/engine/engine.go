package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mediehuset/cueplan/internal/config"
)

// Engine reconciles board cards against the editorial source for both
// publications. The board itself is the only record of what has been
// processed; every pass rebuilds its view from fresh fetches.
type Engine struct {
	source SourceClient
	board  BoardClient
	cfg    *config.Config
	log    zerolog.Logger
}

func New(src SourceClient, brd BoardClient, cfg *config.Config, log zerolog.Logger) *Engine {
	return &Engine{
		source: src,
		board:  brd,
		cfg:    cfg,
		log:    log,
	}
}

// CheckNew discovers unambiguous new articles for a publication and creates
// intake cards for them.
func (e *Engine) CheckNew(ctx context.Context, pub config.Publication) error {
	pipeline := e.cfg.PipelineFor(pub)
	log := e.log.With().Str("pipeline", pub.String()).Logger()
	log.Info().Msg("checking for new articles")

	ids := e.FindNew(ctx, pub)
	log.Info().Int("count", len(ids)).Msg("new articles found")

	if len(ids) > 0 {
		e.CreateCards(ctx, ids, pipeline)
	}
	return ctx.Err()
}
