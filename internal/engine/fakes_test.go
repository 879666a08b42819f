package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/mediehuset/cueplan/internal/board"
	"github.com/mediehuset/cueplan/internal/source"
)

var errFake = errors.New("backend unavailable")

type fakeSource struct {
	mu       sync.Mutex
	feeds    map[string][]string
	feedErr  map[string]error
	articles map[string]*source.Article
	fetchErr map[string]error
	fetched  []string
}

func (f *fakeSource) ListIDs(_ context.Context, feed string) ([]string, error) {
	if err := f.feedErr[feed]; err != nil {
		return nil, err
	}
	return f.feeds[feed], nil
}

func (f *fakeSource) Fetch(_ context.Context, id string) (*source.Article, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, id)
	f.mu.Unlock()
	if err := f.fetchErr[id]; err != nil {
		return nil, err
	}
	if a, ok := f.articles[id]; ok {
		return a, nil
	}
	return nil, errFake
}

type fieldUpdate struct {
	CardID  string
	FieldID string
	Update  board.FieldUpdate
}

type cardUpdate struct {
	CardID string
	Req    board.UpdateCardRequest
}

type fakeBoard struct {
	mu      sync.Mutex
	cards   []board.Card
	listErr error
	corrIDs []string
	corrErr error

	created      []board.CreateCardRequest
	createErr    error
	updated      []cardUpdate
	fieldUpdates []fieldUpdate
}

func (f *fakeBoard) ListCards(_ context.Context, _ string, _ board.ListOptions) ([]board.Card, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.cards, nil
}

func (f *fakeBoard) ListCorrelationIDs(_ context.Context, _ string, _ []string) ([]string, error) {
	if f.corrErr != nil {
		return nil, f.corrErr
	}
	return f.corrIDs, nil
}

func (f *fakeBoard) CreateCard(_ context.Context, req board.CreateCardRequest) (*board.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	return &board.Card{ID: "card-" + req.Desc, Name: req.Name, Desc: req.Desc}, nil
}

func (f *fakeBoard) UpdateCard(_ context.Context, cardID string, req board.UpdateCardRequest) (*board.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, cardUpdate{CardID: cardID, Req: req})
	return &board.Card{ID: cardID, Name: req.Name, Desc: req.Desc}, nil
}

func (f *fakeBoard) UpdateCustomField(_ context.Context, cardID, fieldID string, update board.FieldUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fieldUpdates = append(f.fieldUpdates, fieldUpdate{CardID: cardID, FieldID: fieldID, Update: update})
	return nil
}
