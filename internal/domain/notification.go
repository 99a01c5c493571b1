package domain

import "context"

// NotificationService defines the interface for notification services
type NotificationService interface {
	// SendSuccess sends a success notification with statistics
	SendSuccess(ctx context.Context, stats Statistics) error

	// SendError sends an error notification with error details
	SendError(ctx context.Context, err error) error
}

// Statistics holds the figures of one exported document
type Statistics struct {
	TotalAnime      int
	Watchable       int
	Finished        int
	LatestEpisodes  int
	Slider          int
	Trending        int
	Popular         int
	MostFavorite    int
	RecentAdded     int
	LatestCompleted int
	WatchablePct    float64
	DupeCount       int
}
