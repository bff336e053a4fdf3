package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/user/partscribe/internal/catalog"
	"github.com/user/partscribe/internal/domain"
	"github.com/user/partscribe/internal/monitoring"
	"github.com/user/partscribe/internal/render"
	"github.com/user/partscribe/internal/scrape"
)

// Synthesizer produces description prose from a DescriptionRequest.
type Synthesizer interface {
	Synthesize(ctx context.Context, req domain.DescriptionRequest) (string, error)
}

// Pipeline sequences URL building, rendering, extraction, and description
// synthesis for one query. Everything it produces is created fresh per
// request; nothing outlives the invocation.
type Pipeline struct {
	baseURL  string
	renderer render.Renderer
	synth    Synthesizer
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

func New(baseURL string, r render.Renderer, s Synthesizer, m *monitoring.Metrics, l *zap.Logger) *Pipeline {
	return &Pipeline{
		baseURL:  baseURL,
		renderer: r,
		synth:    s,
		metrics:  m,
		logger:   l,
	}
}

// Describe runs the full pipeline for a vehicle query. Render and query
// failures are recovered locally: synthesis still runs with a generic
// prompt and the result comes back degraded. A synthesis failure, on
// either branch, is terminal — there is no further fallback — and is
// returned as an error.
func (p *Pipeline) Describe(ctx context.Context, q domain.Query) (*domain.PipelineResult, error) {
	url := catalog.BuildURL(p.baseURL, q.Year, q.Make, q.Model)
	outcome := p.extract(ctx, url)

	start := time.Now()
	description, err := p.synth.Synthesize(ctx, domain.DescriptionRequest{Query: q, Outcome: outcome})
	p.metrics.ObserveSynthesis(time.Since(start))
	if err != nil {
		p.metrics.IncRequests("failed")
		return nil, err
	}

	if outcome.Failed {
		p.metrics.IncRequests("degraded")
		return &domain.PipelineResult{
			Description:    description,
			Products:       []domain.ProductRecord{},
			SourceURL:      url,
			Degraded:       true,
			DegradedReason: outcome.Cause,
		}, nil
	}

	p.metrics.IncRequests("ok")
	meta := outcome.Metadata
	return &domain.PipelineResult{
		Description: description,
		Products:    outcome.Products,
		Metadata:    &meta,
		SourceURL:   url,
	}, nil
}

// extract renders the page and runs both extractors. It never returns an
// error: any failure up to and including document parsing becomes the
// failure variant of the outcome. Zero products found is NOT a failure —
// an empty catalog page still takes the success path.
func (p *Pipeline) extract(ctx context.Context, url string) domain.ExtractionOutcome {
	start := time.Now()
	html, err := p.renderer.Render(ctx, url)
	p.metrics.ObserveRender(time.Since(start))
	if err != nil {
		p.logger.Warn("render failed, taking fallback path",
			zap.String("url", url), zap.Error(err))
		p.metrics.IncRenderFailures("render")
		return domain.FailureOutcome(err.Error())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Structurally different from a render failure, so logged as
		// such, but routed the same way.
		p.logger.Error("rendered document could not be queried",
			zap.String("url", url), zap.Error(err))
		p.metrics.IncRenderFailures("query")
		return domain.FailureOutcome(err.Error())
	}

	products := scrape.ExtractProducts(doc)
	meta := scrape.ExtractMetadata(doc, html)
	p.logger.Info("page extracted",
		zap.String("url", url),
		zap.Int("products", len(products)),
		zap.Int("html_bytes", meta.HTMLLength))
	return domain.SuccessOutcome(products, meta)
}
