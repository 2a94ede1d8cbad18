package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	logging "github.com/ipfs/go-log/v2"

	"github.com/menugloss/menugloss/internal/retry"
)

var log = logging.Logger("menugloss/search")

// ErrSessionLost marks a browser session the remote end has invalidated.
// It is the one lookup failure a fresh session can cure; callers test
// for it with errors.Is. Anything else that goes wrong during a lookup
// means the page had no data, which is not worth a retry.
var ErrSessionLost = errors.New("browser session lost")

// Target names one piece of data to pull off a result page.
type Target struct {
	XPath string
	Attr  string // attribute to read, or empty for the element text
}

// Session is one live browser session. Lookup navigates to a URL and
// extracts the targets in order; targets whose element is missing are
// skipped, so the result holds only successful extractions. A lookup on
// an invalidated session fails with an error wrapping ErrSessionLost.
type Session interface {
	Lookup(ctx context.Context, url string, targets []Target) ([]string, error)
	Quit() error
}

// Factory opens fresh browser sessions, both the initial one and every
// replacement after a loss.
type Factory interface {
	NewSession() (Session, error)
}

// Knowledge panel titles render as kno-ecr-pt spans; some result pages
// put the text in a sibling node instead, so both are tried and the
// first hit wins.
var knowledgeGraphTargets = []Target{
	{XPath: "//*[contains(@class,'kno-ecr-pt')]/span"},
	{XPath: "//*[contains(@class,'kno-ecr-pt')]/following-sibling::node()/span"},
}

var imageTargets = []Target{
	{XPath: "//*[contains(@class,'rg_i')]", Attr: "src"},
}

// Engine answers menu-item queries against Google, transparently
// replacing the browser session whenever the remote end drops it.
type Engine struct {
	factory Factory
	session Session
}

// NewEngine opens the initial browser session.
func NewEngine(factory Factory) (*Engine, error) {
	session, err := factory.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to open browser session: %w", err)
	}
	return &Engine{factory: factory, session: session}, nil
}

// KnowledgeGraph searches Google for query and returns the knowledge
// panel snippet, or "" when the result page has none.
func (e *Engine) KnowledgeGraph(ctx context.Context, query string) (string, error) {
	return e.first(ctx, searchURL(query), knowledgeGraphTargets)
}

// Image runs a Google image search for the query plus "food" and returns
// the first thumbnail source, or "" when nothing matched.
func (e *Engine) Image(ctx context.Context, query string) (string, error) {
	return e.first(ctx, imageURL(query), imageTargets)
}

func (e *Engine) first(ctx context.Context, pageURL string, targets []Target) (string, error) {
	results, err := e.lookup(ctx, pageURL, targets)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", nil
	}
	return results[0], nil
}

// lookup retries indefinitely across session losses, opening a fresh
// session before each repeat. An empty result is a success and returns
// immediately; only ErrSessionLost earns a retry.
func (e *Engine) lookup(ctx context.Context, pageURL string, targets []Target) ([]string, error) {
	return retry.Retry(0, 0, isSessionLoss, func() ([]string, error) {
		if e.session == nil {
			session, err := e.factory.NewSession()
			if err != nil {
				return nil, fmt.Errorf("failed to replace browser session: %w", err)
			}
			e.session = session
		}

		results, err := e.session.Lookup(ctx, pageURL, targets)
		if isSessionLoss(err) {
			log.Warnf("Browser session lost during lookup of %s", pageURL)
			e.session.Quit()
			e.session = nil
		}
		return results, err
	})
}

func isSessionLoss(err error) bool {
	return errors.Is(err, ErrSessionLost)
}

// Close quits the live session. The driver service backing it is owned
// by whoever started it.
func (e *Engine) Close() error {
	if e.session == nil {
		return nil
	}
	return e.session.Quit()
}

func searchURL(query string) string {
	return "https://www.google.com/search?" + url.Values{"q": {query}}.Encode()
}

func imageURL(query string) string {
	v := url.Values{"tbm": {"isch"}, "q": {query + " food"}}
	return "https://www.google.com/search?" + v.Encode()
}
