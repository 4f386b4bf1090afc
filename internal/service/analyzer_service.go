package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"peacemaker/internal/cache"
	"peacemaker/internal/interpret"
	"peacemaker/internal/model"
	"peacemaker/internal/prompt"
	"peacemaker/internal/repository"
	"peacemaker/internal/retry"
	"peacemaker/internal/scale"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// MaxTextLength bounds the submitted text, in characters
const MaxTextLength = 5000

// Generator produces the model's free-text answer for a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AnalyzerService scores text on a scale via the remote model
type AnalyzerService struct {
	scales      *scale.Registry
	generator   Generator
	policy      retry.Policy
	interpreter interpret.Interpreter

	history     repository.AnalysisRepo
	cache       cache.ResultCache
	broadcaster Broadcaster

	inflight singleflight.Group
	now      func() time.Time
}

// NewAnalyzerService creates a new analyzer. A nil generator serves mock results.
func NewAnalyzerService(scales *scale.Registry, generator Generator, policy retry.Policy, interpreter interpret.Interpreter) *AnalyzerService {
	return &AnalyzerService{
		scales:      scales,
		generator:   generator,
		policy:      policy,
		interpreter: interpreter,
		now:         time.Now,
	}
}

// SetHistory enables persistence of finished analyses
func (s *AnalyzerService) SetHistory(history repository.AnalysisRepo) {
	s.history = history
}

// SetCache enables result caching
func (s *AnalyzerService) SetCache(c cache.ResultCache) {
	s.cache = c
}

// SetBroadcaster sets the WebSocket broadcaster for progress events
func (s *AnalyzerService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Scales returns the scale registry
func (s *AnalyzerService) Scales() *scale.Registry {
	return s.scales
}

// Topics returns the topic picker entries, with Other last
func (s *AnalyzerService) Topics() []string {
	topics := make([]string, 0, len(model.ControversialTopics)+1)
	topics = append(topics, model.ControversialTopics...)
	return append(topics, model.OtherTopic)
}

// Analyze validates req, calls the model and interprets its answer
func (s *AnalyzerService) Analyze(ctx context.Context, req *model.AnalyzeRequest) (*model.Analysis, error) {
	desc, text, topic, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, desc.Name, topic, text)
		if err != nil {
			log.Printf("[Analyzer] Cache lookup failed: %v", err)
		} else if cached != nil {
			cached.Cached = true
			s.notify(req.SessionID, MsgAnalysisCompleted, cached)
			return cached, nil
		}
	}

	s.notify(req.SessionID, MsgAnalysisStarted, map[string]string{"scale": desc.Name, "topic": topic})

	// Identical submissions already in flight share one remote call. The call
	// is detached from the caller so one client going away does not fail the others.
	key := cache.Key(desc.Name, topic, text)
	v, err, shared := s.inflight.Do(key, func() (interface{}, error) {
		return s.run(context.WithoutCancel(ctx), desc, text, topic, req.SessionID)
	})
	if err != nil {
		log.Printf("[Analyzer] Analysis failed (scale=%s): %v", desc.Name, err)
		s.notify(req.SessionID, MsgAnalysisFailed, map[string]string{"error": UserMessage(err)})
		return nil, err
	}

	analysis := v.(*model.Analysis)
	if shared {
		dup := *analysis
		analysis = &dup
	}
	s.notify(req.SessionID, MsgAnalysisCompleted, analysis)
	return analysis, nil
}

func (s *AnalyzerService) validate(req *model.AnalyzeRequest) (*scale.Descriptor, string, string, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, "", "", ErrEmptyText
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return nil, "", "", ErrTextTooLong
	}

	desc, err := s.scales.Lookup(strings.ToLower(strings.TrimSpace(req.Scale)))
	if err != nil {
		return nil, "", "", &ValidationError{Message: fmt.Sprintf("Unknown scale %q", req.Scale), Err: err}
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == model.OtherTopic {
		topic = strings.TrimSpace(req.CustomTopic)
		if topic == "" {
			return nil, "", "", ErrMissingCustomTopic
		}
	}
	if desc.RequiresTopic && topic == "" {
		return nil, "", "", ErrMissingTopic
	}

	return desc, text, topic, nil
}

func (s *AnalyzerService) run(ctx context.Context, desc *scale.Descriptor, text, topic, sessionID string) (*model.Analysis, error) {
	var interp interpret.Interpretation
	if s.generator == nil {
		interp = s.mockInterpretation(desc)
	} else {
		raw, err := s.generate(ctx, prompt.Build(desc, text, topic), sessionID)
		if err != nil {
			return nil, err
		}
		interp, err = s.interpreter.Interpret(raw, desc)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
	}

	analysis := &model.Analysis{
		ID:        uuid.New().String(),
		Scale:     desc.Name,
		Topic:     topic,
		Text:      text,
		Result:    interp.Result,
		Degraded:  interp.Degraded,
		Reason:    interp.Reason,
		CreatedAt: s.now().UTC(),
	}
	log.Printf("[Analyzer] Scored %s=%d (%s) degraded=%v", desc.Name, analysis.Result.Score, analysis.Result.Category, analysis.Degraded)

	s.store(ctx, analysis)
	return analysis, nil
}

func (s *AnalyzerService) generate(ctx context.Context, p, sessionID string) (string, error) {
	policy := s.policy
	policy.OnRetry = func(n int, delay time.Duration, err error) {
		s.notify(sessionID, MsgAnalysisRetrying, map[string]interface{}{
			"retry":   n,
			"delayMs": delay.Milliseconds(),
		})
	}

	raw, err := retry.Do(ctx, policy, func(ctx context.Context) (string, error) {
		return s.generator.Generate(ctx, p)
	})
	if err == nil {
		return raw, nil
	}
	if retry.IsQuotaError(err) {
		return "", fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}
	return "", fmt.Errorf("%w: %w", ErrRemoteFailure, err)
}

// Storage problems never fail an analysis
func (s *AnalyzerService) store(ctx context.Context, analysis *model.Analysis) {
	if s.history != nil {
		if err := s.history.Save(ctx, analysis); err != nil {
			log.Printf("[Analyzer] ERROR: Failed to save analysis %s: %v", analysis.ID, err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, analysis); err != nil {
			log.Printf("[Analyzer] ERROR: Failed to cache analysis %s: %v", analysis.ID, err)
		}
	}
}

func (s *AnalyzerService) notify(sessionID, msgType string, payload interface{}) {
	if s.broadcaster == nil || sessionID == "" {
		return
	}
	s.broadcaster.BroadcastToSession(sessionID, msgType, payload)
}

// Mock result used when no API key is configured
func (s *AnalyzerService) mockInterpretation(desc *scale.Descriptor) interpret.Interpretation {
	return interpret.Interpretation{
		Result: model.ScoreResult{
			Score:           desc.Midpoint(),
			Explanation:     "AI analysis is not configured on this server; this is a placeholder score.",
			Category:        desc.DefaultCategory(),
			ImprovementTips: []string{"Configure GEMINI_API_KEY to receive a real analysis."},
		},
		Degraded: true,
		Reason:   "ai_disabled",
	}
}

// Describe derives the UI display hints for an analysis
func (s *AnalyzerService) Describe(analysis *model.Analysis) (*model.Display, error) {
	desc, err := s.scales.Lookup(analysis.Scale)
	if err != nil {
		return nil, err
	}
	band, err := desc.Classify(analysis.Result.Score)
	if err != nil {
		return nil, err
	}
	display := &model.Display{
		Category:   band.Category,
		Label:      band.Label,
		Badge:      band.Badge,
		ScoreColor: band.ScoreColor,
		Percent:    desc.Percent(analysis.Result.Score),
		Max:        desc.Max,
		LowLabel:   desc.LowLabel,
		HighLabel:  desc.HighLabel,
	}
	if level, ok := desc.Level(analysis.Result.Score); ok {
		display.Description = level.Description
		display.LevelColor = level.Color
	}
	return display, nil
}

// GetAnalysis returns a stored analysis, or nil when unknown
func (s *AnalyzerService) GetAnalysis(ctx context.Context, id string) (*model.Analysis, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.GetByID(ctx, id)
}

// ListAnalyses returns recent analyses, newest first
func (s *AnalyzerService) ListAnalyses(ctx context.Context, scaleName string, limit int64) ([]model.Analysis, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.List(ctx, scaleName, limit)
}

// ErrHistoryDisabled is returned by history reads when MongoDB is not configured
var ErrHistoryDisabled = errors.New("analysis history is not enabled")

// UserMessage maps an analysis error to the notification shown to the user
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return "Failed to analyze text. Please try again."
}
