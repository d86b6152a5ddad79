package deps

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/scheduler"
)

// Store is the write-through persistence used by the handlers.
// *redisstore.Store implements it.
type Store interface {
	scheduler.Store
	DeleteBookmark(ctx context.Context, id string) error
	DeleteCategory(ctx context.Context, id string) error
	InvalidateMetadata(ctx context.Context, pageURL string) error
	Ping(ctx context.Context) error
}

// EnrichQueue is satisfied by *scheduler.Enricher.
type EnrichQueue interface {
	scheduler.Enqueuer
	Pending() int
}

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to access the server
	AllowedCIDRS []string         // IPs allowed to access the status and API endpoints
	TrustProxy   bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)

	Store       Store                     // nil keeps the service memory-only
	MemoryIndex *index.MemoryIndex        // read path for bookmarks and categories
	Fetcher     scheduler.MetadataFetcher // page metadata, cached
	Enricher    EnrichQueue               // background metadata enrichment (nil disables it)

	ReloadTrigger chan struct{} // manual seed reload (nil if no seed file)

	RankThreshold        float64 // minimum score kept by search
	StrongMatchThreshold float64 // minimum score for a fuzzy duplicate
	DefaultLimit         int     // page size when the client gives none
	MaxLimit             int     // upper bound for ?limit=

	// WriteLimit guards the mutating API. server.New fills it from config when nil.
	WriteLimit func(http.Handler) http.Handler
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
