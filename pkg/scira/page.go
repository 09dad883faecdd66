package scira

import "time"

// page abstracts the DOM interactions the client needs from a live browser
// tab. The production implementation drives headless Chrome; tests drive a
// scripted fake so the stabilization state machine is exercised without a
// browser.
type page interface {
	// Navigate loads the target URL and waits for a minimally interactive DOM.
	Navigate(url string, timeout time.Duration) error
	// WaitVisible blocks until the selector matches a visible element.
	WaitVisible(selector string, timeout time.Duration) error
	// SubmitPrompt types the prompt into the input control and submits it.
	SubmitPrompt(selector, prompt string) error
	// LastAnswerText reads the text of the last element matching selector.
	LastAnswerText(selector string) (string, error)
	// Close tears the browser session down. Must be safe on every exit path.
	Close() error
}

// Scira ships no API; these selectors couple us to the current page markup
// and are the first thing to check when scraping breaks.
const (
	inputSelector  = `textarea[placeholder*="Ask"]`
	answerSelector = `[data-message-role="assistant"]`
)
