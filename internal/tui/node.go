package tui

import (
	"context"

	"github.com/grindlemire/graft"
)

const (
	// FeedNodeID is the unique identifier for the progress feed Graft node.
	FeedNodeID graft.ID = "tui.feed"
	// ViewNodeID is the unique identifier for the progress view Graft node.
	ViewNodeID graft.ID = "tui.view"
)

func init() {
	graft.Register(graft.Node[*Feed]{
		ID:        FeedNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Feed, error) {
			return NewFeed(), nil
		},
	})

	graft.Register(graft.Node[*View]{
		ID:        ViewNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{FeedNodeID},
		Run: func(ctx context.Context) (*View, error) {
			feed, err := graft.Dep[*Feed](ctx)
			if err != nil {
				return nil, err
			}
			return NewView(feed), nil
		},
	})
}
