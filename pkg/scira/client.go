package scira

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"ai-multichat-be/pkg/llm"
	"ai-multichat-be/pkg/markdown"

	gocache "github.com/patrickmn/go-cache"
)

// NoResponsePlaceholder is returned when the answer never showed up before
// the wall-clock ceiling. A timed-out poll is a partial success, not an
// error.
const NoResponsePlaceholder = "No complete response received from Scira."

// Config bounds every phase of a scraping session.
type Config struct {
	URL               string
	NavigationTimeout time.Duration // page reaches an interactive DOM
	SelectorTimeout   time.Duration // input control / response container appear
	PollInterval      time.Duration // stabilization poll tick
	StableReads       int           // consecutive unchanged reads = complete
	AnswerTimeout     time.Duration // hard ceiling on the polling loop
	CacheTTL          time.Duration // answer cache lifetime
}

func DefaultConfig(url string) Config {
	if url == "" {
		url = "https://scira.ai/"
	}
	return Config{
		URL:               url,
		NavigationTimeout: 30 * time.Second,
		SelectorTimeout:   10 * time.Second,
		PollInterval:      time.Second,
		StableReads:       3,
		AnswerTimeout:     40 * time.Second,
		CacheTTL:          5 * time.Minute,
	}
}

// Client asks the scraped Scira web page a question by driving a headless
// browser session. Each Ask owns one isolated session for its full lifetime.
type Client struct {
	cfg     Config
	cache   *gocache.Cache
	logger  *log.Logger
	newPage func(ctx context.Context) (page, error)
}

// Ensure Client implements llm.Provider
var _ llm.Provider = &Client{}

func NewClient(cfg Config, logger *log.Logger) *Client {
	return &Client{
		cfg:     cfg,
		cache:   gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		logger:  logger,
		newPage: newBrowserPage,
	}
}

// Generate satisfies llm.Provider; options are ignored, the scraped page has
// a single model behind it.
func (c *Client) Generate(ctx context.Context, prompt string, _ ...llm.Option) (string, error) {
	return c.Ask(ctx, prompt)
}

// Ask submits the prompt and polls the page until the answer text
// stabilizes. Stabilization timeout degrades to the last observed text.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("scira: prompt must be a non-empty string")
	}

	if cached, ok := c.cache.Get(prompt); ok {
		return cached.(string), nil
	}

	pg, err := c.newPage(ctx)
	if err != nil {
		return "", fmt.Errorf("scira: browser launch failed: %w", err)
	}
	defer func() {
		if cerr := pg.Close(); cerr != nil {
			c.logger.Printf("[scira] browser teardown failed: %v", cerr)
		}
	}()

	if err := pg.Navigate(c.cfg.URL, c.cfg.NavigationTimeout); err != nil {
		return "", fmt.Errorf("scira: navigation to %s failed: %w", c.cfg.URL, err)
	}
	if err := pg.WaitVisible(inputSelector, c.cfg.SelectorTimeout); err != nil {
		return "", fmt.Errorf("scira: prompt input not found: %w", err)
	}
	if err := pg.SubmitPrompt(inputSelector, prompt); err != nil {
		return "", fmt.Errorf("scira: prompt submission failed: %w", err)
	}
	if err := pg.WaitVisible(answerSelector, c.cfg.SelectorTimeout); err != nil {
		return "", fmt.Errorf("scira: response container not found: %w", err)
	}

	text, stabilized := c.awaitAnswer(ctx, pg, prompt)
	if !stabilized {
		c.logger.Printf("[scira] answer did not stabilize within %s, returning partial text", c.cfg.AnswerTimeout)
	}
	if strings.TrimSpace(text) == "" {
		return NoResponsePlaceholder, nil
	}

	answer := markdown.Normalize(text)
	if stabilized {
		c.cache.Set(prompt, answer, gocache.DefaultExpiration)
	}
	return answer, nil
}

// awaitAnswer is the stabilization state machine. Each tick reads the last
// answer element; empty reads and reads that merely echo the submitted
// prompt are skipped. A changed read resets the run-length counter, and
// StableReads consecutive unchanged reads complete the answer. The loop is
// bounded by AnswerTimeout; hitting the ceiling returns whatever was last
// observed.
func (c *Client) awaitAnswer(ctx context.Context, pg page, prompt string) (text string, stabilized bool) {
	deadline := time.Now().Add(c.cfg.AnswerTimeout)
	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	var last string
	stable := 0
	for {
		if time.Now().After(deadline) {
			return last, false
		}
		select {
		case <-ctx.Done():
			return last, false
		case <-ticker.C:
		}

		current, err := pg.LastAnswerText(answerSelector)
		if err != nil {
			// Transient DOM read failures do not abort polling.
			c.logger.Printf("[scira] answer read failed: %v", err)
			continue
		}

		trimmed := strings.TrimSpace(current)
		if trimmed == "" || trimmed == strings.TrimSpace(prompt) {
			continue
		}

		if current == last {
			stable++
			if stable >= c.cfg.StableReads {
				return last, true
			}
			continue
		}
		last = current
		stable = 0
	}
}
