package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/debtwise/debtwise-backend/internal/dto"
	"github.com/debtwise/debtwise-backend/internal/errs"
	"github.com/debtwise/debtwise-backend/internal/models"
	"github.com/debtwise/debtwise-backend/pkg/logger"
)

type vertexClient interface {
	GenerateContent(ctx context.Context, req dto.VertexGenerateRequest) (dto.VertexGenerateResponse, error)
}

type aiObligationStore interface {
	List(ctx context.Context, uid string) ([]*models.Obligation, error)
}

// admissionLimiter gates model invocations per user.
type admissionLimiter interface {
	Allow(uid string) bool
}

const (
	// cooldownMessage is returned for rejected requests; it is a normal
	// response, never an error.
	cooldownMessage = "You're sending requests too fast. Please wait a few seconds and try again."

	maxRetries    = 3
	maxRetryDelay = 30 * time.Second
)

// retryInPattern matches a server-suggested delay such as "retry in 2.5s".
var retryInPattern = regexp.MustCompile(`(?i)retry in ([0-9]*\.?[0-9]+)s`)

type aiService struct {
	vertex   vertexClient
	store    aiObligationStore
	limiter  admissionLimiter
	clockNow func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewAIService(vertex vertexClient, store aiObligationStore, limiter admissionLimiter) *aiService {
	return &aiService{
		vertex:   vertex,
		store:    store,
		limiter:  limiter,
		clockNow: time.Now,
		sleep:    sleepContext,
	}
}

// Query answers a user's question about their obligations. It degrades
// toward always returning an answer: cooldown rejections and malformed
// model output both produce a normal response. Only genuine provider
// failures escape as errors.
func (s *aiService) Query(ctx context.Context, uid string, req dto.AssistantQueryRequest) (dto.AssistantQueryResponse, error) {
	log := logger.FromContext(ctx)

	if !s.limiter.Allow(uid) {
		log.Info("assistant query rejected by cooldown")
		return dto.AssistantQueryResponse{Response: cooldownMessage}, nil
	}

	obligations, err := s.store.List(ctx, uid)
	if err != nil {
		return dto.AssistantQueryResponse{}, err
	}

	now := s.clockNow()
	prompt, err := buildAssistantPrompt(assistantContext{
		Summary:  calculateFinancialSummary(obligations),
		Late:     lateObligations(obligations),
		Upcoming: upcomingPayments(obligations, now, defaultUpcomingLimit),
		All:      obligations,
		History:  req.History,
		Query:    req.Message,
	})
	if err != nil {
		return dto.AssistantQueryResponse{}, err
	}

	resp, err := s.generateWithRetry(ctx, dto.VertexGenerateRequest{
		System:      assistantSystemPrompt(now),
		UserMessage: prompt,
	})
	if err != nil {
		return dto.AssistantQueryResponse{}, err
	}

	answer, recovered := extractResponse(resp.Text)
	if !recovered {
		log.Warn("model output did not contain the expected JSON object, returning raw text")
	}
	log.Info("assistant query completed")
	return dto.AssistantQueryResponse{Response: answer}, nil
}

// generateWithRetry retries rate-limited calls up to maxRetries times. The
// wait honors a server-suggested delay when the error carries one and falls
// back to exponential backoff otherwise. Any other error propagates as is.
func (s *aiService) generateWithRetry(ctx context.Context, req dto.VertexGenerateRequest) (dto.VertexGenerateResponse, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if err := s.sleep(ctx, retryDelay(lastErr, attempt)); err != nil {
				return dto.VertexGenerateResponse{}, err
			}
		}

		resp, err := s.vertex.GenerateContent(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !isRateLimitError(err) {
			return dto.VertexGenerateResponse{}, errs.NewExternalServiceError("vertex", "generation failed", false, err)
		}
		lastErr = err
	}
	return dto.VertexGenerateResponse{}, errs.NewExternalServiceError("vertex", "rate limited after retries", true, lastErr)
}

func isRateLimitError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}

// retryDelay computes the wait before retry number attempt (1-based): the
// server-suggested "retry in <seconds>s" rounded up to the millisecond when
// present, else 1000 * 2^attempt ms. Each wait is capped at maxRetryDelay.
func retryDelay(err error, attempt int) time.Duration {
	delay := time.Duration(1<<uint(attempt)) * time.Second
	if m := retryInPattern.FindStringSubmatch(err.Error()); m != nil {
		var seconds float64
		if _, scanErr := fmt.Sscanf(m[1], "%f", &seconds); scanErr == nil {
			delay = time.Duration(math.Ceil(seconds*1000)) * time.Millisecond
		}
	}
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// extractResponse recovers the {"response": "..."} object the model is
// instructed to return. Models wrap JSON in prose often enough that the
// substring between the first '{' and last '}' is tried first; anything
// unparseable falls back to the raw text so the user still gets an answer.
func extractResponse(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return raw, false
	}

	// A pointer distinguishes a missing "response" key from a present but
	// empty answer; the contract admits the empty string.
	var payload struct {
		Response *string `json:"response"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil || payload.Response == nil {
		return raw, false
	}
	return *payload.Response, true
}

// --- Prompt construction ---

type assistantContext struct {
	Summary  dto.FinancialSummary
	Late     []*models.Obligation
	Upcoming []*models.Obligation
	All      []*models.Obligation
	History  []dto.ChatMessage
	Query    string
}

func assistantSystemPrompt(now time.Time) string {
	return "You are DebtWise, a personal debt and loan advisor. " +
		"Answer only questions about the user's debts, loans, budgets, and repayment strategies. " +
		"Use only the data supplied in the message; never invent obligations, amounts, or dates. " +
		"Respond in English. " +
		"Return exactly one JSON object of the form {\"response\": \"...\"} with no text before or after it. " +
		"Today is " + now.Format(dateLayout) + "."
}

func buildAssistantPrompt(c assistantContext) (string, error) {
	var b strings.Builder

	if len(c.History) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, msg := range c.History {
			b.WriteString(msg.Role)
			b.WriteString(": ")
			b.WriteString(msg.Content)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	sections := []struct {
		header string
		value  any
	}{
		{"Financial summary", c.Summary},
		{"Late obligations (oldest first)", c.Late},
		{"Upcoming payments (soonest first)", c.Upcoming},
		{"All obligations", c.All},
	}
	for _, section := range sections {
		raw, err := json.Marshal(section.value)
		if err != nil {
			return "", err
		}
		b.WriteString(section.header)
		b.WriteString(":\n")
		b.Write(raw)
		b.WriteString("\n\n")
	}

	b.WriteString("User question: ")
	b.WriteString(c.Query)
	return b.String(), nil
}
