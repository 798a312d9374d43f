package catalog

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"time"

	"newswire/internal/cache"
	"newswire/internal/notify"
	"newswire/internal/story"
)

const (
	DefaultPageSize = 20

	// refreshTimeout bounds a single background refresh.
	refreshTimeout = time.Minute
)

var numericID = regexp.MustCompile(`^\d+$`)

type StoryClient interface {
	FetchStories(ctx context.Context, limit int) ([]APIStory, error)
	FetchStory(ctx context.Context, id string) (StoryResponse, error)
	FetchRecommendations(ctx context.Context, id string) ([]APIStory, error)
}

// Origin tells callers whether a result holds real or placeholder data.
type Origin int

const (
	OriginLive Origin = iota
	OriginCache
	OriginFallback
)

func (o Origin) String() string {
	switch o {
	case OriginLive:
		return "live"
	case OriginCache:
		return "cache"
	case OriginFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

func (o Origin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

type StoryResult struct {
	Story   story.Story
	Similar []story.Story
	Origin  Origin
}

type StoriesResult struct {
	Stories []story.Story
	Origin  Origin
}

// ticker is an interface so we can swap out time.Ticker in tests.
type ticker interface {
	C() <-chan time.Time
	Stop()
}

type tickerFactory func(d time.Duration) ticker

// timeTicker is the real implementation backed by time.Ticker.
type timeTicker struct {
	*time.Ticker
}

func (t *timeTicker) C() <-chan time.Time {
	return t.Ticker.C
}

func (t *timeTicker) Stop() {
	t.Ticker.Stop()
}

type Options struct {
	PageSize     int
	MaxRefreshes int // <= 0 is unlimited
	Categories   CategoryMode
}

type Service struct {
	client       StoryClient
	cache        cache.Store
	notifier     notify.Notifier
	pageSize     int
	maxRefreshes int
	categories   CategoryMode
	logger       *log.Logger
	now          func() time.Time
	newTicker    tickerFactory
}

func NewService(client StoryClient, store cache.Store, notifier notify.Notifier, opts Options, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	if store == nil {
		store = cache.NewMemory()
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}

	return &Service{
		client:       client,
		cache:        store,
		notifier:     notifier,
		pageSize:     opts.PageSize,
		maxRefreshes: opts.MaxRefreshes,
		categories:   opts.Categories,
		logger:       logger,
		now:          time.Now,
		newTicker: func(d time.Duration) ticker {
			return &timeTicker{time.NewTicker(d)}
		},
	}
}

// FetchStoryByID returns a story and its similar stories. Upstream failures
// are answered with mock data and OriginFallback; only an invalid id or a
// cancelled context produce an error.
func (s *Service) FetchStoryByID(ctx context.Context, id string) (StoryResult, error) {
	if !numericID.MatchString(id) {
		return StoryResult{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	requested, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return StoryResult{}, fmt.Errorf("%w: %q out of range", ErrInvalidIdentifier, id)
	}

	s.logger.Printf("catalog: fetching story %s", id)

	res, err := s.fetchStory(ctx, id)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return StoryResult{}, ctxErr
	}
	if err != nil {
		s.logger.Printf("catalog: story %s unavailable, using mock data: %v", id, err)
		s.notifyFallback(ctx)

		lead, similar := story.MockResult(requested, s.now())
		return StoryResult{Story: lead, Similar: similar, Origin: OriginFallback}, nil
	}

	s.logger.Printf("catalog: loaded story %d with %d similar stories", res.Story.ID, len(res.Similar))
	return res, nil
}

func (s *Service) fetchStory(ctx context.Context, id string) (StoryResult, error) {
	resp, err := s.client.FetchStory(ctx, id)
	if err != nil {
		return StoryResult{}, err
	}

	now := s.now()
	lead, err := Normalize(resp.Story, now, s.categories)
	if err != nil {
		return StoryResult{}, err
	}

	if resp.Wrapped {
		similar, err := NormalizeAll(resp.SimilarStories, now, s.categories)
		if err != nil {
			return StoryResult{}, err
		}
		return StoryResult{Story: lead, Similar: similar, Origin: OriginLive}, nil
	}

	// Bare record: similar stories come from a best-effort second call.
	recs, err := s.client.FetchRecommendations(ctx, id)
	if err != nil {
		s.logger.Printf("catalog: similar stories for %s unavailable: %v", id, err)
		return StoryResult{Story: lead, Similar: []story.Story{}, Origin: OriginLive}, nil
	}
	similar, err := NormalizeAll(recs, now, s.categories)
	if err != nil {
		s.logger.Printf("catalog: similar stories for %s malformed: %v", id, err)
		similar = []story.Story{}
	}
	return StoryResult{Story: lead, Similar: similar, Origin: OriginLive}, nil
}

// FetchTopStories serves the cached list while it is fresh, unless
// forceRefresh is set. Fallback results are never cached.
func (s *Service) FetchTopStories(ctx context.Context, forceRefresh bool) (StoriesResult, error) {
	if !forceRefresh {
		if stories, ok := s.cache.Read(ctx); ok {
			s.logger.Printf("catalog: using %d cached stories", len(stories))
			return StoriesResult{Stories: stories, Origin: OriginCache}, nil
		}
	}

	s.logger.Println("catalog: fetching fresh stories")

	stories, err := s.fetchTopStories(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return StoriesResult{}, ctxErr
	}
	if err != nil {
		s.logger.Printf("catalog: top stories unavailable, using mock data: %v", err)
		s.notifyFallback(ctx)
		return StoriesResult{Stories: story.MockTopStories(s.now()), Origin: OriginFallback}, nil
	}

	if err := s.cache.Write(ctx, stories); err != nil {
		s.logger.Printf("catalog: failed to cache stories: %v", err)
	}

	s.logger.Printf("catalog: fetched %d stories", len(stories))
	return StoriesResult{Stories: stories, Origin: OriginLive}, nil
}

func (s *Service) fetchTopStories(ctx context.Context) ([]story.Story, error) {
	raw, err := s.client.FetchStories(ctx, s.pageSize)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errNoStories
	}
	return NormalizeAll(raw, s.now(), s.categories)
}

// StoryBySlug resolves numeric slugs through FetchStoryByID. Other slugs are
// not supported by the API and report false without a network call.
func (s *Service) StoryBySlug(ctx context.Context, slug string) (StoryResult, bool, error) {
	if !numericID.MatchString(slug) {
		s.logger.Printf("catalog: non-numeric slug not supported: %q", slug)
		return StoryResult{}, false, nil
	}

	res, err := s.FetchStoryByID(ctx, slug)
	if err != nil {
		return StoryResult{}, false, err
	}
	return res, true, nil
}

// RecommendedStories returns the similar stories of id, or an empty list.
func (s *Service) RecommendedStories(ctx context.Context, id int64) []story.Story {
	res, err := s.FetchStoryByID(ctx, strconv.FormatInt(id, 10))
	if err != nil {
		s.logger.Printf("catalog: recommendations for %d failed: %v", id, err)
		return []story.Story{}
	}
	return res.Similar
}

// StartRefreshing force-refreshes the top stories on every tick so the cache
// stays warm. It returns when ctx is done or after maxRefreshes refreshes.
func (s *Service) StartRefreshing(ctx context.Context, interval time.Duration) {
	t := s.newTicker(interval)
	defer t.Stop()

	count := 0

	s.logger.Printf("catalog: refreshing every %v...", interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Println("catalog: refresher stopping, context cancelled")
			return

		case <-t.C():
			count++
			s.logger.Printf("catalog: refresh #%d starting...", count)

			refreshCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
			res, err := s.FetchTopStories(refreshCtx, true)
			cancel()

			if err != nil {
				s.logger.Printf("catalog: refresh error: %v", err)
			} else {
				s.logger.Printf("catalog: refresh #%d done (%s, %d stories)", count, res.Origin, len(res.Stories))
			}

			if s.maxRefreshes > 0 && count >= s.maxRefreshes {
				s.logger.Printf("catalog: refresher stopping after %d refreshes (max reached)", count)
				return
			}
		}
	}
}

func (s *Service) notifyFallback(ctx context.Context) {
	if err := s.notifier.Notify(ctx, notify.FallbackNotice(s.now())); err != nil {
		s.logger.Printf("catalog: failed to send notification: %v", err)
	}
}
