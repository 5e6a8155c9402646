package notify

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/editathon/contest-api/internal/platform/resilience"
	"github.com/editathon/contest-api/internal/usecase"
)

type WebhookPublisherConfig struct {
	Endpoint       string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// WebhookPublisher posts judged events to a configured endpoint.
// Delivery is best effort: the judging transaction has already
// committed when this runs, so failures are logged and dropped.
type WebhookPublisher struct {
	client         *fasthttp.Client
	endpoint       string
	token          string
	timeout        time.Duration
	logger         *slog.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewWebhookPublisher(cfg WebhookPublisherConfig, logger *slog.Logger) *WebhookPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &WebhookPublisher{
		client:         &fasthttp.Client{},
		endpoint:       strings.TrimSpace(cfg.Endpoint),
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (p *WebhookPublisher) PublishJudged(ctx context.Context, event usecase.JudgedEvent) error {
	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "webhook circuit breaker rejected publish", "state", p.breaker.State())
			return crerr.Wrap(err, "webhook endpoint is temporarily unavailable")
		}
	}

	err := p.post(event)
	if p.circuitEnabled {
		if err != nil {
			p.breaker.RecordFailure()
		} else {
			p.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "judged event published",
		"submission_id", event.SubmissionID, "contest_id", event.ContestID, "status", event.Status)

	return nil
}

func (p *WebhookPublisher) post(event usecase.JudgedEvent) error {
	endpoint, err := validateHTTPEndpoint(p.endpoint)
	if err != nil {
		return crerr.Wrap(err, "invalid WEBHOOK_ENDPOINT")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	body, err := sonic.Marshal(event)
	if err != nil {
		return crerr.Wrap(err, "marshal judged event")
	}
	if _, err := buf.Write(body); err != nil {
		return crerr.Wrap(err, "buffer judged event")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	req.SetBody(buf.B)

	if err := p.client.DoTimeout(req, resp, p.timeout); err != nil {
		return crerr.Wrap(err, "post judged event")
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return crerr.Newf("webhook responded with status %d", status)
	}

	return nil
}

func validateHTTPEndpoint(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", crerr.New("endpoint is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", crerr.Wrap(err, "parse endpoint")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", crerr.New("endpoint host is required")
	}

	return parsed.String(), nil
}
