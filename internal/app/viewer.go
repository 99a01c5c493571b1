package app

import (
	"context"

	"github.com/varoOP/animedexdb/internal/domain"
	"github.com/varoOP/animedexdb/internal/query"
	"github.com/varoOP/animedexdb/internal/server"
	"github.com/varoOP/animedexdb/internal/view"
)

func (a *App) document(ctx context.Context) (*domain.Document, error) {
	doc, err := a.documentRepo.Get(ctx, a.paths.DocumentPath)
	if err != nil {
		return nil, err
	}
	doc.Normalize()
	return doc, nil
}

func (a *App) Home(ctx context.Context) (view.Home, error) {
	doc, err := a.document(ctx)
	if err != nil {
		return view.Home{}, err
	}
	return view.NewHome(doc), nil
}

// Show builds the detail page for the raw id parameter.
func (a *App) Show(ctx context.Context, rawID string) (view.Detail, error) {
	id, err := view.ParseID(rawID)
	if err != nil {
		return view.Detail{}, err
	}

	doc, err := a.document(ctx)
	if err != nil {
		return view.Detail{}, err
	}
	return view.NewDetail(doc, id)
}

func (a *App) Episode(ctx context.Context, rawID, ep string) (view.EpisodePage, error) {
	id, err := view.ParseID(rawID)
	if err != nil {
		return view.EpisodePage{}, err
	}

	doc, err := a.document(ctx)
	if err != nil {
		return view.EpisodePage{}, err
	}
	return view.NewEpisodePage(doc, id, ep)
}

func (a *App) Search(ctx context.Context, q string) (view.SearchPage, error) {
	doc, err := a.document(ctx)
	if err != nil {
		return view.SearchPage{}, err
	}
	return view.NewSearchPage(doc, q)
}

func (a *App) Genre(ctx context.Context, genre string) (view.SearchPage, error) {
	doc, err := a.document(ctx)
	if err != nil {
		return view.SearchPage{}, err
	}
	return view.NewGenrePage(doc, genre)
}

func (a *App) Suggest(ctx context.Context, q string) ([]view.Suggestion, error) {
	doc, err := a.document(ctx)
	if err != nil {
		return nil, err
	}
	return view.Suggestions(doc, q), nil
}

// Random picks a random title and returns its detail page.
func (a *App) Random(ctx context.Context, rng query.IntN) (view.Detail, error) {
	doc, err := a.document(ctx)
	if err != nil {
		return view.Detail{}, err
	}

	id, err := view.RandomID(doc, rng)
	if err != nil {
		return view.Detail{}, err
	}
	return view.NewDetail(doc, id)
}

// List returns the admin listing of the collection sorted by title.
func (a *App) List(ctx context.Context) ([]view.ListEntry, error) {
	doc, err := a.document(ctx)
	if err != nil {
		return nil, err
	}

	latest := make([]int, 0, len(doc.LatestEpisodes))
	for _, l := range doc.LatestEpisodes {
		latest = append(latest, l.ID)
	}
	return view.Listing(doc.Collection, latest), nil
}

// Serve runs the viewer HTTP API until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	src := server.NewFileSource(a.log, a.documentRepo, a.paths.DocumentPath)
	return server.New(a.log, a.config.ListenAddr, src).Run(ctx)
}
