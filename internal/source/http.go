package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

// maxDocumentBytes caps a fetched document.
const maxDocumentBytes = 8 << 20

// HTTPLoader fetches both documents over HTTP, e.g. from a raw file endpoint
// of the repository that holds them.
type HTTPLoader struct {
	versioningURL string
	backlogURL    string
	token         string
	httpClient    *http.Client
}

func NewHTTPLoader(versioningURL, backlogURL, token string) *HTTPLoader {
	return &HTTPLoader{
		versioningURL: versioningURL,
		backlogURL:    backlogURL,
		token:         token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (l *HTTPLoader) Load(ctx context.Context) (Documents, error) {
	versioning, err := l.fetch(ctx, "versioning", l.versioningURL)
	if err != nil {
		return Documents{}, err
	}
	backlog, err := l.fetch(ctx, "backlog", l.backlogURL)
	if err != nil {
		return Documents{}, err
	}
	return Documents{Versioning: versioning, Backlog: backlog}, nil
}

func (l *HTTPLoader) fetch(ctx context.Context, doc, url string) (string, error) {
	op := "load " + doc
	if url == "" {
		return "", roadmap.MissingSource(doc)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &roadmap.Error{Code: roadmap.CodeMissingSource, Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	if l.token != "" {
		req.Header.Set("Authorization", "Bearer "+l.token)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", &roadmap.Error{Code: roadmap.CodeSourceUnavailable, Op: op, Err: fmt.Errorf("get %s: %w", doc, err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", &roadmap.Error{Code: roadmap.CodeMissingSource, Op: op, Err: fmt.Errorf("get %s: status %d", doc, resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &roadmap.Error{Code: roadmap.CodeSourceUnavailable, Op: op, Err: fmt.Errorf("get %s: status %d: %s", doc, resp.StatusCode, string(respBody))}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return "", &roadmap.Error{Code: roadmap.CodeSourceUnavailable, Op: op, Err: fmt.Errorf("read %s: %w", doc, err)}
	}
	if len(body) == 0 {
		return "", roadmap.MissingSource(doc)
	}
	return string(body), nil
}

// Close releases idle connections.
func (l *HTTPLoader) Close() {
	l.httpClient.CloseIdleConnections()
}
