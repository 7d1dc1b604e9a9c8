// Package gateway is the contract layer with the external vision-language
// analysis service. It builds canonical requests with pinned decoding
// parameters, validates responses against a fixed schema, and converts every
// failure into an AnalysisFailure.
package gateway

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/Jayparmar2411/Nutrivision/internal/model"
)

const (
	NoMealsMessage           = "You haven't logged any meals today. Scan your breakfast to get started!"
	NoAdviceMessage          = "Could not generate advice at this time."
	AdviceUnavailableMessage = "Unable to connect to AI Coach."
)

type Options struct {
	Logger          zerolog.Logger
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// AdviceCacheTTL of zero disables the advice cache.
	AdviceCacheTTL time.Duration
	// AdviceSeed preloads the advice cache, e.g. with answers saved by an
	// earlier process. Expired items are skipped.
	AdviceSeed []model.CachedAdvice
}

type Gateway struct {
	backend Backend
	log     zerolog.Logger
	opts    Options
	advice  *cache.Cache
}

func New(backend Backend, opts Options) *Gateway {
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = 500 * time.Millisecond
	}
	if opts.MaxInterval <= 0 {
		opts.MaxInterval = 5 * time.Second
	}
	g := &Gateway{
		backend: backend,
		log:     opts.Logger.With().Str("component", "gateway").Logger(),
		opts:    opts,
	}
	if opts.AdviceCacheTTL > 0 {
		items := make(map[string]cache.Item, len(opts.AdviceSeed))
		now := time.Now().UnixNano()
		for _, a := range opts.AdviceSeed {
			if a.Prompt == "" || a.Text == "" || a.ExpiresAt <= now {
				continue
			}
			items[a.Prompt] = cache.Item{Object: a.Text, Expiration: a.ExpiresAt}
		}
		g.advice = cache.NewFrom(opts.AdviceCacheTTL, 2*opts.AdviceCacheTTL, items)
	}
	return g
}

// CachedAdvice returns the unexpired advice cache contents, sorted by prompt.
// It is empty when caching is disabled.
func (g *Gateway) CachedAdvice() []model.CachedAdvice {
	out := make([]model.CachedAdvice, 0)
	if g.advice == nil {
		return out
	}
	for prompt, item := range g.advice.Items() {
		text, ok := item.Object.(string)
		if !ok {
			continue
		}
		out = append(out, model.CachedAdvice{Prompt: prompt, Text: text, ExpiresAt: item.Expiration})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prompt < out[j].Prompt })
	return out
}

// Analyze estimates the food in img. Ingredients come back sorted ascending.
func (g *Gateway) Analyze(ctx context.Context, img Image) (model.Analysis, error) {
	if len(img.Data) == 0 {
		return model.Analysis{}, g.failed(fail(OpAnalyze, "no image", nil))
	}
	req := GenerateRequest{
		Contents: []Content{{
			Role:  "user",
			Parts: []Part{{InlineData: img.inline()}, {Text: analyzePrompt}},
		}},
		GenerationConfig: deterministicConfig(analysisSchema()),
	}
	text, err := g.generate(ctx, OpAnalyze, req)
	if err != nil {
		return model.Analysis{}, g.failed(fail(OpAnalyze, "service call", err))
	}
	a, err := decodeAnalysis(text)
	if err != nil {
		return model.Analysis{}, g.failed(fail(OpAnalyze, "invalid response", err))
	}
	return a, nil
}

// Recalculate re-estimates nutrition for a confirmed ingredient set. The
// ingredients are canonicalized before they reach the request, so any
// ordering of the same set produces the same payload. img may be nil.
func (g *Gateway) Recalculate(ctx context.Context, foodName string, ingredients []string, img *Image) (model.PartialAnalysis, error) {
	req := g.recalculateRequest(foodName, ingredients, img)
	text, err := g.generate(ctx, OpRecalculate, req)
	if err != nil {
		return model.PartialAnalysis{}, g.failed(fail(OpRecalculate, "service call", err))
	}
	p, err := decodePartial(text)
	if err != nil {
		return model.PartialAnalysis{}, g.failed(fail(OpRecalculate, "invalid response", err))
	}
	return p, nil
}

func (g *Gateway) recalculateRequest(foodName string, ingredients []string, img *Image) GenerateRequest {
	parts := make([]Part, 0, 2)
	if img != nil && len(img.Data) > 0 {
		parts = append(parts, Part{InlineData: img.inline()})
	}
	parts = append(parts, Part{Text: buildRecalculatePrompt(foodName, ingredients)})
	return GenerateRequest{
		Contents:         []Content{{Role: "user", Parts: parts}},
		GenerationConfig: deterministicConfig(recalculationSchema()),
	}
}

// Advise returns short coaching prose for today's entries. It never fails:
// with no entries it answers without calling the service, and any failure
// yields fallback text.
func (g *Gateway) Advise(ctx context.Context, todays []model.FoodEntry, goals model.Goals) string {
	if len(todays) == 0 {
		return NoMealsMessage
	}
	prompt := buildAdvicePrompt(todays, goals)
	if g.advice != nil {
		if cached, ok := g.advice.Get(prompt); ok {
			adviceCacheHitsTotal.Inc()
			return cached.(string)
		}
	}

	req := GenerateRequest{
		Contents:         []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
		GenerationConfig: adviceConfig(),
	}
	text, err := g.generate(ctx, OpAdvise, req)
	if err != nil {
		if errors.Is(err, ErrEmptyResponse) {
			return NoAdviceMessage
		}
		g.failed(fail(OpAdvise, "service call", err))
		return AdviceUnavailableMessage
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return NoAdviceMessage
	}
	if g.advice != nil {
		g.advice.SetDefault(prompt, text)
	}
	return text
}

func (g *Gateway) generate(ctx context.Context, op Op, req GenerateRequest) (string, error) {
	callsTotal.WithLabelValues(string(op)).Inc()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = g.opts.InitialInterval
	exp.MaxInterval = g.opts.MaxInterval
	exp.Multiplier = 2
	exp.Reset()
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, g.opts.MaxRetries), ctx)

	var text string
	operation := func() error {
		out, err := g.backend.Generate(ctx, req)
		if err != nil {
			if ctx.Err() != nil || !Retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		text = out
		return nil
	}
	notify := func(err error, wait time.Duration) {
		retriesTotal.WithLabelValues(string(op)).Inc()
		g.log.Warn().Err(err).Str("op", string(op)).Dur("wait", wait).Msg("retrying analysis call")
	}
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return "", err
	}
	return text, nil
}

func (g *Gateway) failed(f *AnalysisFailure) *AnalysisFailure {
	failuresTotal.WithLabelValues(string(f.Op)).Inc()
	g.log.Error().Err(f.Err).Str("op", string(f.Op)).Str("reason", f.Reason).Msg("analysis call failed")
	return f
}
