package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/partscribe/internal/describe"
	"github.com/user/partscribe/internal/domain"
	"github.com/user/partscribe/internal/llm"
	"github.com/user/partscribe/internal/monitoring"
	"github.com/user/partscribe/internal/render"
)

// Metrics register in the default prometheus registry, so the package
// shares one instance across tests.
var testMetrics = monitoring.NewMetrics()

type fakeRenderer struct {
	html string
	err  error
}

func (f *fakeRenderer) Render(ctx context.Context, url string) (string, error) {
	if f.err != nil {
		return "", &render.Error{URL: url, Err: f.err}
	}
	return f.html, nil
}

type fakeGenerator struct {
	response string
	err      error
}

func (f *fakeGenerator) Respond(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestPipeline(r render.Renderer, gen describe.TextGenerator) *Pipeline {
	synth := describe.NewSynthesizer(gen, 5*time.Second, zap.NewNop())
	return New("https://catalog.test", r, synth, testMetrics, zap.NewNop())
}

func testQuery() domain.Query {
	return domain.Query{Year: "2022", Make: "honda", Model: "crf-250-r"}
}

const catalogPageHTML = `
	<html><head><title>Honda CRF250R Parts</title></head><body>
		<div class="product-card">
			<span class="product-title">Piston Kit A</span>
			<span class="product-price">$189.99</span>
			<img class="product-image" src="/img/a.jpg">
		</div>
		<div class="product-card">
			<span class="product-title">Piston Kit B</span>
			<img class="product-image" src="/img/b.jpg">
		</div>
	</body></html>`

func TestDescribeSuccess(t *testing.T) {
	p := newTestPipeline(
		&fakeRenderer{html: catalogPageHTML},
		&fakeGenerator{response: "Grounded description."},
	)

	result, err := p.Describe(context.Background(), testQuery())
	require.NoError(t, err)

	assert.False(t, result.Degraded)
	assert.Empty(t, result.DegradedReason)
	assert.Equal(t, "Grounded description.", result.Description)
	assert.Equal(t, "https://catalog.test/parts/2022/honda/crf-250-r", result.SourceURL)

	require.Len(t, result.Products, 2)
	assert.Equal(t, "Piston Kit A", result.Products[0].Title)
	assert.NotEmpty(t, result.Products[0].Price)
	assert.Equal(t, "Piston Kit B", result.Products[1].Title)
	assert.Equal(t, "", result.Products[1].Price)

	require.NotNil(t, result.Metadata)
	assert.Equal(t, "Honda CRF250R Parts", result.Metadata.Title)
	assert.Greater(t, result.Metadata.HTMLLength, 0)
}

func TestDescribeRenderFailureIsDegraded(t *testing.T) {
	p := newTestPipeline(
		&fakeRenderer{err: fmt.Errorf("navigation timeout after 30s")},
		&fakeGenerator{response: "Generic description."},
	)

	result, err := p.Describe(context.Background(), testQuery())
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	assert.Contains(t, result.DegradedReason, "timeout")
	assert.Empty(t, result.Products)
	assert.Nil(t, result.Metadata)
	// Fallback synthesis still ran.
	assert.NotEmpty(t, result.Description)
	// The fallback path re-reports the same URL the success path would use.
	assert.Equal(t, "https://catalog.test/parts/2022/honda/crf-250-r", result.SourceURL)
}

func TestDescribeEmptyCatalogIsNotDegraded(t *testing.T) {
	html := `<html><head><title>No Results</title></head><body><p>Nothing here.</p></body></html>`
	p := newTestPipeline(
		&fakeRenderer{html: html},
		&fakeGenerator{response: "Sparse but grounded."},
	)

	result, err := p.Describe(context.Background(), testQuery())
	require.NoError(t, err)

	// Zero products found is a valid outcome, not an error.
	assert.False(t, result.Degraded)
	assert.Empty(t, result.Products)
	require.NotNil(t, result.Metadata)
	assert.Equal(t, "No Results", result.Metadata.Title)
	assert.Greater(t, result.Metadata.HTMLLength, 0)
}

func TestDescribeSynthesisFailureIsTerminal(t *testing.T) {
	genErr := &llm.GenerationError{Err: errors.New("backend unreachable")}
	p := newTestPipeline(
		&fakeRenderer{html: catalogPageHTML},
		&fakeGenerator{err: genErr},
	)

	result, err := p.Describe(context.Background(), testQuery())
	require.Error(t, err)
	assert.Nil(t, result)

	var ge *llm.GenerationError
	assert.ErrorAs(t, err, &ge)
}

func TestDescribeSynthesisFailureOnFallbackBranch(t *testing.T) {
	p := newTestPipeline(
		&fakeRenderer{err: errors.New("net::ERR_CONNECTION_REFUSED")},
		&fakeGenerator{err: &llm.GenerationError{Err: errors.New("backend unreachable")}},
	)

	// A generation failure is terminal even when it happens on the
	// fallback branch; there is nothing left to fall back to.
	result, err := p.Describe(context.Background(), testQuery())
	require.Error(t, err)
	assert.Nil(t, result)
}
