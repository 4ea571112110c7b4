package feed

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/centinela-news/feed-sync/internal/datasources"
	"github.com/centinela-news/feed-sync/internal/domain"
)

// PageSize is the number of articles fetched per page.
const PageSize = 10

const (
	defaultImageURL   = "https://images.pexels.com/photos/6801648/pexels-photo-6801648.jpeg?auto=compress&cs=tinysrgb&w=800"
	defaultSourceName = "Centinela"
	defaultLink       = "#"

	baseLikesMin    = 100
	baseLikesSpan   = 500
	baseCommentsMin = 50
	baseCommentsSpan = 300
)

// Snapshot is the externally observable feed state. Articles are
// replaced wholesale per fetch, never mutated in place.
type Snapshot struct {
	Articles         []domain.FeedArticle `json:"articles"`
	Loading          bool                 `json:"loading"`
	LoadingMore      bool                 `json:"loading_more"`
	CategoryChanging bool                 `json:"category_changing"`
	HasMore          bool                 `json:"has_more"`
	TotalCount       int64                `json:"total_count"`
	CurrentPage      int                  `json:"current_page"`
	Error            string               `json:"error,omitempty"`
}

// Assembler builds the ranked, labelled, snippeted feed from the remote
// dataset, degrading to the bundled mock dataset on any remote failure.
// A failed fetch is never surfaced as an error while the fallback can
// produce articles.
type Assembler struct {
	source   datasources.ArticleSource
	snippets datasources.SnippetGenerator
	now      func() time.Time
	rng      *rand.Rand

	mu               sync.Mutex
	articles         []domain.FeedArticle
	selected         []string
	currentPage      int
	totalCount       int64
	hasMore          bool
	loading          bool
	loadingMore      bool
	categoryChanging bool
	err              error
}

func NewAssembler(source datasources.ArticleSource, snippets datasources.SnippetGenerator) *Assembler {
	return NewAssemblerWithRand(source, snippets, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewAssemblerWithRand pins the randomized base counts for tests.
func NewAssemblerWithRand(source datasources.ArticleSource, snippets datasources.SnippetGenerator, rng *rand.Rand) *Assembler {
	return &Assembler{
		source:   source,
		snippets: snippets,
		now:      time.Now,
		rng:      rng,
		hasMore:  true,
	}
}

// Snapshot returns a copy of the current feed state.
func (a *Assembler) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	articles := make([]domain.FeedArticle, len(a.articles))
	copy(articles, a.articles)

	snap := Snapshot{
		Articles:         articles,
		Loading:          a.loading,
		LoadingMore:      a.loadingMore,
		CategoryChanging: a.categoryChanging,
		HasMore:          a.hasMore,
		TotalCount:       a.totalCount,
		CurrentPage:      a.currentPage,
	}
	if a.err != nil {
		snap.Error = a.err.Error()
	}
	return snap
}

// SetCategories replaces the selected category filter and refetches the
// first page as a category switch, which keeps the already rendered
// articles in place until the new ones arrive.
func (a *Assembler) SetCategories(ctx context.Context, categories []string) {
	a.mu.Lock()
	a.selected = append([]string(nil), categories...)
	a.mu.Unlock()

	a.FetchPage(ctx, 0, false, true)
}

// Refresh reloads the feed from the first page.
func (a *Assembler) Refresh(ctx context.Context) {
	a.FetchPage(ctx, 0, false, false)
}

// LoadMore fetches the next page and appends it. No-op while a load is
// already in flight or when the dataset is exhausted.
func (a *Assembler) LoadMore(ctx context.Context) {
	a.mu.Lock()
	if a.loadingMore || !a.hasMore {
		a.mu.Unlock()
		return
	}
	next := a.currentPage + 1
	a.mu.Unlock()

	a.FetchPage(ctx, next, true, false)
}

// FetchPage loads one page of the feed.
//
// The first page starts with a count query; any remote failure there or
// on the page fetch itself, and an empty first page, all divert to the
// mock dataset without setting an error. Fetched articles are priority
// sorted, labelled and snippeted before they become visible.
func (a *Assembler) FetchPage(ctx context.Context, page int, appendPage, categorySwitch bool) {
	a.beginFetch(page, appendPage, categorySwitch)
	defer a.endFetch(page, categorySwitch)

	logger := domain.LoggerFromContext(ctx)

	if page == 0 {
		count, err := a.source.CountArticles(ctx)
		if err != nil {
			logger.InfoContext(ctx, "article count unavailable, serving mock dataset",
				slog.String("error", err.Error()))
			a.fallbackToMockData(page, appendPage)
			return
		}
		a.mu.Lock()
		a.totalCount = count
		a.mu.Unlock()
	}

	raw, err := a.source.ListLatestArticles(ctx, domain.ArticlePage{Page: page, PageSize: PageSize})
	if err != nil {
		logger.InfoContext(ctx, "article fetch failed, serving mock dataset",
			slog.String("error", err.Error()))
		a.fallbackToMockData(page, appendPage)
		return
	}
	if len(raw) == 0 {
		if page == 0 {
			logger.InfoContext(ctx, "remote dataset empty, serving mock dataset")
			a.fallbackToMockData(page, appendPage)
			return
		}
		a.mu.Lock()
		a.hasMore = false
		a.mu.Unlock()
		return
	}

	sortByPriority(raw)
	formatted := a.format(ctx, raw)

	a.mu.Lock()
	defer a.mu.Unlock()

	if appendPage && page > 0 {
		a.articles = append(a.articles, formatted...)
	} else {
		a.articles = filterByCategories(formatted, a.selected)
	}

	a.hasMore = len(formatted) == PageSize && int64(page*PageSize+len(formatted)) < a.totalCount
	a.currentPage = page
	a.err = nil
}

func (a *Assembler) beginFetch(page int, appendPage, categorySwitch bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if page == 0 {
		if categorySwitch {
			a.categoryChanging = true
		} else {
			a.loading = true
			if !appendPage {
				a.articles = nil
			}
		}
		a.currentPage = 0
		a.hasMore = true
	} else {
		a.loadingMore = true
	}
	a.err = nil
}

func (a *Assembler) endFetch(page int, categorySwitch bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if page == 0 {
		if categorySwitch {
			a.categoryChanging = false
		} else {
			a.loading = false
		}
	} else {
		a.loadingMore = false
	}
}

// fallbackToMockData paginates the bundled dataset with the same page
// size as the remote path and clears any previous error.
func (a *Assembler) fallbackToMockData(page int, appendPage bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.err = nil

	start := page * PageSize
	end := start + PageSize
	if start >= len(mockArticles) {
		a.hasMore = false
		return
	}
	if end > len(mockArticles) {
		end = len(mockArticles)
	}
	paginated := mockArticles[start:end]

	if appendPage && page > 0 {
		a.articles = append(a.articles, paginated...)
	} else {
		a.articles = append([]domain.FeedArticle(nil), paginated...)
		a.totalCount = int64(len(mockArticles))
	}

	a.currentPage = page
	a.hasMore = end < len(mockArticles)
}

// sortByPriority orders by score descending with publish time descending
// as the stable tie break.
func sortByPriority(raw []domain.RawArticle) {
	sort.SliceStable(raw, func(i, j int) bool {
		si, sj := domain.PriorityScore(raw[i]), domain.PriorityScore(raw[j])
		if si != sj {
			return si > sj
		}
		return raw[i].PublishedAt.After(raw[j].PublishedAt)
	})
}

func (a *Assembler) format(ctx context.Context, raw []domain.RawArticle) []domain.FeedArticle {
	now := a.now()

	formatted := make([]domain.FeedArticle, 0, len(raw))
	for _, article := range raw {
		text, _ := a.snippets.GenerateSnippet(ctx, article.RawText(), article.Title)

		image := article.ImageURL
		if image == "" {
			image = defaultImageURL
		}
		source := article.SourceName
		if source == "" {
			source = defaultSourceName
		}
		link := article.Link
		if link == "" {
			link = defaultLink
		}

		a.mu.Lock()
		likes := a.rng.IntN(baseLikesSpan) + baseLikesMin
		comments := a.rng.IntN(baseCommentsSpan) + baseCommentsMin
		a.mu.Unlock()

		formatted = append(formatted, domain.FeedArticle{
			ID:       article.ID,
			Title:    article.Title,
			Content:  text,
			TimeAgo:  domain.FormatTimeAgo(now, article.PublishedAt),
			Label:    domain.CategoryLabel(article),
			Image:    image,
			Likes:    likes,
			Comments: comments,
			Source:   source,
			Link:     link,
		})
	}
	return formatted
}

func filterByCategories(articles []domain.FeedArticle, selected []string) []domain.FeedArticle {
	if len(selected) == 0 {
		return articles
	}
	filtered := make([]domain.FeedArticle, 0, len(articles))
	for _, article := range articles {
		if domain.MatchesAnyCategory(article, selected) {
			filtered = append(filtered, article)
		}
	}
	return filtered
}
