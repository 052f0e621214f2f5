// Package generation coordinates a single text-generation request:
// resolve model, estimate cost, consult the budget gate, invoke the provider,
// record usage, respond.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/AjilAshok/ai-access-platfrom/internal/modelregistry"
	"github.com/AjilAshok/ai-access-platfrom/internal/models"
	"github.com/AjilAshok/ai-access-platfrom/internal/provider"
	"github.com/AjilAshok/ai-access-platfrom/internal/quota"
	"github.com/AjilAshok/ai-access-platfrom/internal/tokencount"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Jitter bounds for synthesized mock token counts.
const (
	mockJitterMin  = 40
	mockJitterSpan = 80
)

// mockResponses is the fixed fallback pool served when the provider fails.
var mockResponses = []string{
	"That's a great question! Based on the information provided, I'd recommend breaking this down into smaller components and tackling each one systematically. Start by identifying the core requirements, then build iteratively.",
	"Here's a concise summary: The key points to consider are (1) clarity of purpose, (2) audience alignment, and (3) measurable outcomes. Each of these factors plays a critical role in determining the best approach.",
	"I can help with that! The most efficient solution here would be to use a modular approach. This allows for easier testing, maintenance, and scalability over time.",
	"Great prompt! Here are three things to keep in mind: First, context is everything — make sure your inputs are well-defined. Second, iteration is key — refine your outputs based on feedback. Third, simplicity often beats complexity.",
	"Absolutely. The answer depends on your specific context, but generally speaking, the best practice is to start simple, measure results, and scale what works. Avoid over-engineering early on.",
}

// mockPrefix tags fallback responses so clients can recognize demo output.
const mockPrefix = "[Demo Mode] "

// Usage is the token breakdown returned to the client.
type Usage struct {
	Input  int64 `json:"input"`
	Output int64 `json:"output"`
	Total  int64 `json:"total"`
}

// Result is the outcome of one generation request.
type Result struct {
	Response string `json:"response"`
	Usage    Usage  `json:"usage"`
	Mock     bool   `json:"mock"`
}

// Generator runs the generation workflow against the database, the model
// registry, the budget gate and the external provider.
type Generator struct {
	db        *gorm.DB
	registry  *modelregistry.Registry
	gate      *quota.Gate
	completer provider.Completer
	jitter    func() int64
}

// NewGenerator constructs a Generator with the default jitter source.
func NewGenerator(db *gorm.DB, registry *modelregistry.Registry, gate *quota.Gate, completer provider.Completer) *Generator {
	return &Generator{
		db:        db,
		registry:  registry,
		gate:      gate,
		completer: completer,
		jitter: func() int64 {
			return mockJitterMin + rand.Int63n(mockJitterSpan)
		},
	}
}

// WithJitter overrides the mock jitter source. Intended for tests.
func (g *Generator) WithJitter(jitter func() int64) *Generator {
	if jitter != nil {
		g.jitter = jitter
	}
	return g
}

// Generate resolves the model, estimates cost, consults the budget gate,
// invokes the provider and appends one usage record.
//
// Registry misses and gate denials short-circuit before any external call and
// write nothing. Provider failures of any kind are absorbed into a mock
// fallback response with synthesized token counts; only a failure to append
// the usage record itself is fatal, since losing the audit trail would
// undermine the quota model.
func (g *Generator) Generate(ctx context.Context, userID uint64, publicModel, prompt string) (*Result, error) {
	providerModelID, errResolve := g.registry.Resolve(publicModel)
	if errResolve != nil {
		return nil, errResolve
	}

	estimated := tokencount.Estimate(prompt)

	if errAdmit := g.gate.CheckAndAdmit(ctx, userID, estimated); errAdmit != nil {
		return nil, errAdmit
	}

	completion, errComplete := g.completer.Complete(ctx, providerModelID, prompt)
	if errComplete != nil {
		return g.fallback(ctx, userID, publicModel, estimated, errComplete)
	}

	record := models.UsageRecord{
		UserID:       userID,
		Model:        publicModel,
		InputTokens:  completion.InputTokens,
		OutputTokens: completion.OutputTokens,
		TotalTokens:  completion.TotalTokens,
	}
	if errCreate := g.db.WithContext(ctx).Create(&record).Error; errCreate != nil {
		return nil, fmt.Errorf("generation: record usage: %w", errCreate)
	}

	return &Result{
		Response: completion.Text,
		Usage: Usage{
			Input:  completion.InputTokens,
			Output: completion.OutputTokens,
			Total:  completion.TotalTokens,
		},
	}, nil
}

// fallback serves a deterministic mock response after a provider failure,
// still metering usage with synthesized counts.
func (g *Generator) fallback(ctx context.Context, userID uint64, publicModel string, estimated int64, cause error) (*Result, error) {
	log.WithError(cause).WithFields(log.Fields{
		"user_id": userID,
		"model":   publicModel,
	}).Warn("provider unavailable, serving mock response")

	mockTotal := estimated + g.jitter()
	mockOutput := mockTotal - estimated
	response := mockPrefix + mockResponses[estimated%int64(len(mockResponses))]

	detail, _ := json.Marshal(map[string]string{
		"error": cause.Error(),
		"at":    time.Now().UTC().Format(time.RFC3339),
	})

	record := models.UsageRecord{
		UserID:        userID,
		Model:         publicModel,
		InputTokens:   estimated,
		OutputTokens:  mockOutput,
		TotalTokens:   mockTotal,
		Mock:          true,
		ProviderError: detail,
	}
	if errCreate := g.db.WithContext(ctx).Create(&record).Error; errCreate != nil {
		return nil, fmt.Errorf("generation: record usage: %w", errCreate)
	}

	return &Result{
		Response: response,
		Usage: Usage{
			Input:  estimated,
			Output: mockOutput,
			Total:  mockTotal,
		},
		Mock: true,
	}, nil
}
