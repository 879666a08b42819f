package engine

import (
	"context"

	"github.com/mediehuset/cueplan/internal/board"
	"github.com/mediehuset/cueplan/internal/config"
	"github.com/mediehuset/cueplan/internal/source"
)

// CreateCards fetches every article concurrently and creates one intake card
// per successfully fetched record. A failed fetch or create is logged and
// skipped; cards already created stay.
func (e *Engine) CreateCards(ctx context.Context, ids []string, pipeline config.Pipeline) {
	log := e.log.With().Str("pipeline", pipeline.Publication.String()).Logger()

	type result struct {
		id      string
		article *source.Article
		err     error
	}

	results := make(chan result, len(ids))
	for _, id := range ids {
		go func(id string) {
			article, err := e.source.Fetch(ctx, id)
			results <- result{id: id, article: article, err: err}
		}(id)
	}

	for range ids {
		res := <-results
		if res.err != nil {
			log.Error().Err(res.err).Str("article", res.id).Msg("article fetch failed, skipping")
			continue
		}

		var labels []string
		if form := pipeline.FormLabels[res.article.TemplateTag]; form != "" {
			labels = append(labels, form)
		}

		_, err := e.board.CreateCard(ctx, board.CreateCardRequest{
			ListID:   pipeline.IntakeListID,
			Name:     res.article.DisplayName(),
			Desc:     res.article.ID,
			LabelIDs: labels,
		})
		if err != nil {
			log.Error().Err(err).Str("article", res.id).Msg("card creation failed")
		}
	}
}
