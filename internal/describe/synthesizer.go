package describe

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/user/partscribe/internal/domain"
)

// TextGenerator is the language-generation capability: given prompt text,
// return response text. *llm.Model satisfies it.
type TextGenerator interface {
	Respond(ctx context.Context, prompt string) (string, error)
}

// Synthesizer turns a DescriptionRequest into prose. It is stateless and
// deterministic given its input, modulo the backend's own non-determinism.
type Synthesizer struct {
	gen     TextGenerator
	timeout time.Duration
	logger  *zap.Logger
}

func NewSynthesizer(gen TextGenerator, timeout time.Duration, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{gen: gen, timeout: timeout, logger: logger}
}

// Synthesize builds a prompt from the extraction outcome and invokes the
// generation backend once, with no retry. The outcome tag selects between
// the grounded and generic prompts; both request the same response shape
// from the backend.
func (s *Synthesizer) Synthesize(ctx context.Context, req domain.DescriptionRequest) (string, error) {
	var prompt string
	if req.Outcome.Failed {
		prompt = buildGenericPrompt(req.Query)
	} else {
		prompt = buildGroundedPrompt(req.Query, req.Outcome.Products, req.Outcome.Metadata)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.gen.Respond(ctx, prompt)
	if err != nil {
		s.logger.Error("description generation failed",
			zap.Bool("generic", req.Outcome.Failed),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", err
	}

	s.logger.Info("description generated",
		zap.Bool("generic", req.Outcome.Failed),
		zap.Int("prompt_chars", len(prompt)),
		zap.Duration("elapsed", time.Since(start)))
	return text, nil
}
