package encyclopedia

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc"

	"github.com/editathon/contest-api/internal/platform/resilience"
	"github.com/editathon/contest-api/internal/usecase"
)

// Article is the metadata slice the contest core cares about. The
// encyclopedia stays an external collaborator; nothing here is
// persisted.
type Article struct {
	Title          string
	PageID         int64
	Length         int
	LastRevisionAt *time.Time
}

type Config struct {
	BaseURL        string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	logger         *slog.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// GetArticle fetches page metadata. A missing page is (zero, false,
// nil), not an error.
func (c *Client) GetArticle(ctx context.Context, title string) (Article, bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Article{}, false, crerr.New("article title is required")
	}
	if c.baseURL == "" {
		return Article{}, false, crerr.New("encyclopedia base url is not configured")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "encyclopedia circuit breaker rejected request", "state", c.breaker.State())
			return Article{}, false, crerr.Wrap(err, "encyclopedia is temporarily unavailable")
		}
	}

	article, found, err := c.fetchSummary(ctx, title)
	if c.circuitEnabled {
		if err != nil {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}

	return article, found, err
}

// ArticleExists implements the submission precondition check.
func (c *Client) ArticleExists(ctx context.Context, title string) (bool, error) {
	_, found, err := c.GetArticle(ctx, title)
	return found, err
}

// GetArticles fetches metadata for several titles concurrently. Titles
// that are missing or fail to resolve are absent from the result; the
// read path uses this for enrichment only, so partial results are
// acceptable.
func (c *Client) GetArticles(ctx context.Context, titles []string) map[string]Article {
	out := make(map[string]Article, len(titles))
	if len(titles) == 0 {
		return out
	}

	var mu sync.Mutex
	var wg conc.WaitGroup
	for _, title := range titles {
		title := title
		wg.Go(func() {
			article, found, err := c.GetArticle(ctx, title)
			if err != nil {
				c.logger.WarnContext(ctx, "article metadata fetch failed", "article", title, "error", err)
				return
			}
			if !found {
				return
			}
			mu.Lock()
			out[title] = article
			mu.Unlock()
		})
	}
	wg.Wait()

	return out
}

// ArticleInfos adapts GetArticles to the shape submission listings
// consume.
func (c *Client) ArticleInfos(ctx context.Context, titles []string) map[string]usecase.ArticleInfo {
	articles := c.GetArticles(ctx, titles)
	infos := make(map[string]usecase.ArticleInfo, len(articles))
	for title, article := range articles {
		infos[title] = usecase.ArticleInfo{
			SizeBytes:      article.Length,
			LastRevisionAt: article.LastRevisionAt,
		}
	}

	return infos
}

func (c *Client) fetchSummary(ctx context.Context, title string) (Article, bool, error) {
	summaryURL := c.baseURL + "/api/rest_v1/page/summary/" + url.PathEscape(title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, summaryURL, nil)
	if err != nil {
		return Article{}, false, crerr.Wrap(err, "create summary request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Article{}, false, crerr.Wrap(err, "request article summary")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Article{}, false, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Article{}, false, crerr.Wrap(err, "read summary response")
	}
	if resp.StatusCode != http.StatusOK {
		return Article{}, false, crerr.Newf("article summary failed with status %d", resp.StatusCode)
	}

	var decoded pageSummaryResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return Article{}, false, crerr.Wrap(err, "unmarshal summary response")
	}
	if decoded.PageID == 0 {
		return Article{}, false, nil
	}

	article := Article{
		Title:  decoded.Title,
		PageID: decoded.PageID,
		Length: len(decoded.Extract),
	}
	if ts := strings.TrimSpace(decoded.Timestamp); ts != "" {
		if parsed, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
			article.LastRevisionAt = &parsed
		} else {
			c.logger.DebugContext(ctx, "unparseable revision timestamp", "article", title, "timestamp", ts)
		}
	}
	if article.Title == "" {
		article.Title = title
	}

	return article, true, nil
}

type pageSummaryResponse struct {
	Title     string `json:"title"`
	PageID    int64  `json:"pageid"`
	Extract   string `json:"extract"`
	Timestamp string `json:"timestamp"`
}
