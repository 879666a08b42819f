package engine

import (
	"context"

	"github.com/mediehuset/cueplan/internal/board"
	"github.com/mediehuset/cueplan/internal/source"
)

// SourceClient is the slice of the editorial source the engine consumes.
type SourceClient interface {
	ListIDs(ctx context.Context, feed string) ([]string, error)
	Fetch(ctx context.Context, id string) (*source.Article, error)
}

// BoardClient is the slice of the board service the engine consumes.
type BoardClient interface {
	ListCards(ctx context.Context, boardID string, opts board.ListOptions) ([]board.Card, error)
	ListCorrelationIDs(ctx context.Context, boardID string, fieldIDs []string) ([]string, error)
	CreateCard(ctx context.Context, req board.CreateCardRequest) (*board.Card, error)
	UpdateCard(ctx context.Context, cardID string, req board.UpdateCardRequest) (*board.Card, error)
	UpdateCustomField(ctx context.Context, cardID, fieldID string, update board.FieldUpdate) error
}
