package engine

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/mediehuset/cueplan/internal/board"
	"github.com/mediehuset/cueplan/internal/config"
	"github.com/mediehuset/cueplan/internal/source"
)

// correlationIDLength is the fixed width of source ids. A correlation field
// value of any other length is not an id and the card is skipped.
const correlationIDLength = 7

// Reconcile walks every card on the pipeline's board and pushes whatever has
// drifted relative to freshly fetched source data. Cards are independent:
// one card's failure never aborts the pass.
func (e *Engine) Reconcile(ctx context.Context, pub config.Publication) error {
	pipeline := e.cfg.PipelineFor(pub)
	log := e.log.With().Str("pipeline", pub.String()).Logger()
	log.Info().Msg("checking for changes")

	opts := board.ListOptions{Fields: "name,desc,labels", CustomFieldItems: true}
	if pub == config.Print {
		opts.Filter = "all"
	}
	cards, err := e.board.ListCards(ctx, pipeline.BoardID, opts)
	if err != nil {
		log.Error().Err(err).Msg("board fetch failed, skipping reconcile pass")
		return nil
	}

	pending := e.pendingSet(ctx, pipeline, log)

	for i := range cards {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		e.reconcileCard(ctx, pipeline, &cards[i], pending, log)
	}
	return nil
}

// pendingSet fetches the delivered-queue ids used for submitted-label
// escalation. Only the online pipeline escalates; a fetch failure degrades
// to "nothing pending".
func (e *Engine) pendingSet(ctx context.Context, pipeline config.Pipeline, log zerolog.Logger) map[string]bool {
	if pipeline.Publication != config.Online || pipeline.PendingFeed == "" {
		return nil
	}
	ids, err := e.source.ListIDs(ctx, pipeline.PendingFeed)
	if err != nil {
		log.Error().Err(err).Msg("pending-queue fetch failed")
		return nil
	}
	pending := make(map[string]bool, len(ids))
	for _, id := range ids {
		pending[id] = true
	}
	return pending
}

func (e *Engine) reconcileCard(ctx context.Context, pipeline config.Pipeline, card *board.Card, pending map[string]bool, log zerolog.Logger) {
	fields := card.CustomFields()
	correlationID := fields[pipeline.CorrelationField].Text
	if len(correlationID) != correlationIDLength {
		return
	}

	article, err := e.source.Fetch(ctx, correlationID)
	if err != nil {
		log.Error().Err(err).Str("card", card.ID).Str("article", correlationID).Msg("article fetch failed, skipping card")
		return
	}

	nameChanged := article.Name(pipeline.LongName) != card.Name

	if pipeline.Publication == config.Online {
		e.reconcileOnline(ctx, pipeline, card, article, fields, pending, nameChanged, log)
	} else {
		e.reconcilePrint(ctx, pipeline, card, article, fields, nameChanged, log)
	}
}

// reconcileOnline applies the online update rules: monotonic label
// collection with submitted-label escalation, a combined card update when
// name or labels moved, and three independent custom-field pushes.
func (e *Engine) reconcileOnline(
	ctx context.Context,
	pipeline config.Pipeline,
	card *board.Card,
	article *source.Article,
	fields map[string]board.FieldValue,
	pending map[string]bool,
	nameChanged bool,
	log zerolog.Logger,
) {
	storedModified := fields[pipeline.LastModifiedField].Date
	storedPublished := fields[pipeline.PublishedField].Date
	// Checkbox semantics are inverted: "checked" means the article is NOT open.
	isOpen := !fields[pipeline.OpenField].IsChecked()

	labels, labelChanged := collectLabels(card.LabelIDs(),
		pipeline.FormLabels[article.TemplateTag],
		pipeline.StateLabels[article.WorkflowStatus],
	)

	settled := slices.Contains(labels, pipeline.ApprovedLabel) ||
		slices.Contains(labels, pipeline.PublishedLabel)
	if pending[article.ID] && !slices.Contains(labels, pipeline.SubmittedLabel) && !settled {
		labels = append(labels, pipeline.SubmittedLabel)
		labelChanged = true
	}

	if nameChanged || labelChanged {
		if _, err := e.board.UpdateCard(ctx, card.ID, board.UpdateCardRequest{
			Name:     article.DisplayName(),
			Desc:     article.Summary,
			LabelIDs: labels,
		}); err != nil {
			log.Error().Err(err).Str("card", card.ID).Msg("card update failed")
		}
	}

	if valueChanged(storedPublished, article.PublishTime) {
		if err := e.board.UpdateCustomField(ctx, card.ID, pipeline.PublishedField, board.DateUpdate(article.PublishTime)); err != nil {
			log.Error().Err(err).Str("card", card.ID).Msg("publish-date update failed")
		}
	}

	if pipeline.TrackChanges && valueChanged(storedModified, article.LastModified) {
		if err := e.board.UpdateCustomField(ctx, card.ID, pipeline.LastModifiedField, board.DateUpdate(article.LastModified)); err != nil {
			log.Error().Err(err).Str("card", card.ID).Msg("last-modified update failed")
		}
	}

	if article.IsPremium != isOpen {
		// Same inversion on write as on read.
		if err := e.board.UpdateCustomField(ctx, card.ID, pipeline.OpenField, board.CheckedUpdate(!article.IsPremium)); err != nil {
			log.Error().Err(err).Str("card", card.ID).Msg("open-flag update failed")
		}
	}
}

// reconcilePrint is the simplified variant: no change tracking, no open
// flag, no submitted-label escalation.
func (e *Engine) reconcilePrint(
	ctx context.Context,
	pipeline config.Pipeline,
	card *board.Card,
	article *source.Article,
	fields map[string]board.FieldValue,
	nameChanged bool,
	log zerolog.Logger,
) {
	storedPublished := fields[pipeline.PublishedField].Date

	labels, labelChanged := collectLabels(card.LabelIDs(),
		pipeline.FormLabels[article.TemplateTag],
		pipeline.StateLabels[article.WorkflowStatus],
	)

	if nameChanged || labelChanged {
		if _, err := e.board.UpdateCard(ctx, card.ID, board.UpdateCardRequest{
			Name:     article.DisplayNameLong(),
			Desc:     article.Summary,
			LabelIDs: labels,
		}); err != nil {
			log.Error().Err(err).Str("card", card.ID).Msg("card update failed")
		}
	}

	if valueChanged(storedPublished, article.PublishTime) {
		if err := e.board.UpdateCustomField(ctx, card.ID, pipeline.PublishedField, board.DateUpdate(article.PublishTime)); err != nil {
			log.Error().Err(err).Str("card", card.ID).Msg("publish-date update failed")
		}
	}
}
