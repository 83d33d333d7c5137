package responder

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"agendabot/models"
)

// Candidate models, tried in order until one answers. The free-tier quota
// differs per model, so rotation rides out per-model rate limits.
var defaultModels = []string{
	"gemini-1.5-flash",
	"gemini-1.5-flash-latest",
	"gemini-1.5-pro",
	"gemini-1.5-pro-latest",
}

const minRequestInterval = 2 * time.Second

// GeminiGenerator produces replies through the Gemini API with model
// rotation, falling back to canned replies when no key is configured or
// every model fails. GenerateReply never returns an error: reply generation
// is best effort by contract.
type GeminiGenerator struct {
	client   *genai.Client
	models   []string
	fallback FallbackResponder
	contexts *RedisContextStore // optional

	mu          sync.Mutex
	lastRequest time.Time
}

// NewGeminiGenerator builds a generator. An empty apiKey yields a generator
// that only serves fallback replies. contexts may be nil.
func NewGeminiGenerator(apiKey string, contexts *RedisContextStore) (*GeminiGenerator, error) {
	g := &GeminiGenerator{models: defaultModels, contexts: contexts}
	if apiKey == "" {
		return g, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *GeminiGenerator) GenerateReply(ctx context.Context, rc models.ReplyContext) (string, error) {
	if g.client == nil {
		return g.fallback.GenerateReply(rc), nil
	}

	g.throttle()
	prompt := g.buildPrompt(ctx, rc)

	for _, name := range g.models {
		model := g.client.GenerativeModel(name)
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			zap.L().Debug("gemini model failed", zap.String("model", name), zap.Error(err))
			continue
		}
		reply := collectText(resp)
		if reply == "" {
			continue
		}
		g.remember(ctx, rc, reply)
		return reply, nil
	}

	zap.L().Warn("all gemini models failed, using fallback reply")
	return g.fallback.GenerateReply(rc), nil
}

// throttle enforces a minimum delay between API requests.
func (g *GeminiGenerator) throttle() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if wait := minRequestInterval - time.Since(g.lastRequest); wait > 0 {
		time.Sleep(wait)
	}
	g.lastRequest = time.Now()
}

func (g *GeminiGenerator) buildPrompt(ctx context.Context, rc models.ReplyContext) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are the virtual assistant of %s.\n\n", rc.BusinessName)
	fmt.Fprintf(&sb, "Today: %s, %s. Time: %s.\n", rc.Weekday, rc.Today, rc.Now)
	if len(rc.AvailableToday) > 0 {
		fmt.Fprintf(&sb, "Open slots today: %s.\n", strings.Join(rc.AvailableToday, ", "))
	} else {
		sb.WriteString("No open slots today.\n")
	}
	fmt.Fprintf(&sb, "\nBusiness info: %s\n\n", rc.Instructions)
	sb.WriteString("Rules: only talk about the business (prices, hours, appointments). ")
	sb.WriteString("Prices are fixed. Keep replies short, 2-3 lines, chat style.\n")
	sb.WriteString("When the client confirms a date and time, append exactly: [BOOK: YYYY-MM-DD HH:MM]\n\n")

	if len(rc.History) > 0 {
		sb.WriteString("Conversation so far:\n")
		for _, m := range rc.History {
			author := rc.ClientName
			if m.IsAgent {
				author = "Bot"
			}
			fmt.Fprintf(&sb, "%s: %s\n", author, m.Content)
		}
	} else if cc := g.recall(ctx, rc.ClientName); cc != nil && cc.LastMessage != "" {
		fmt.Fprintf(&sb, "Previous exchange:\n%s: %s\nBot: %s\n", rc.ClientName, cc.LastMessage, cc.LastReply)
	}

	fmt.Fprintf(&sb, "\nCurrent message from %s: %s\n\nYour reply:", rc.ClientName, rc.Message)
	return sb.String()
}

func (g *GeminiGenerator) recall(ctx context.Context, clientName string) *ConversationContext {
	if g.contexts == nil {
		return nil
	}
	cc, err := g.contexts.Get(ctx, clientName)
	if err != nil {
		zap.L().Debug("context store read failed", zap.Error(err))
		return nil
	}
	return cc
}

func (g *GeminiGenerator) remember(ctx context.Context, rc models.ReplyContext, reply string) {
	if g.contexts == nil {
		return
	}
	cc := &ConversationContext{LastMessage: rc.Message, LastReply: reply, UpdatedAt: time.Now()}
	if err := g.contexts.Set(ctx, rc.ClientName, cc); err != nil {
		zap.L().Debug("context store write failed", zap.Error(err))
	}
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}
