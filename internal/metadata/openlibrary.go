package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrNoMatch is returned when OpenLibrary has nothing for the query.
var ErrNoMatch = errors.New("no matching book found")

// BookMetadata is what OpenLibrary tells us about a book.
type BookMetadata struct {
	Title          string `json:"title,omitempty"`
	Author         string `json:"author,omitempty"`
	ISBN           string `json:"isbn,omitempty"`
	CoverURL       string `json:"cover_url,omitempty"`
	OpenLibraryKey string `json:"open_library_key,omitempty"`
}

// OpenLibraryClient fetches book metadata from the OpenLibrary API.
type OpenLibraryClient struct {
	httpClient *http.Client
	baseURL    string
	coversURL  string
	userAgent  string
	limiter    *rate.Limiter
}

// ClientOption customizes an OpenLibraryClient.
type ClientOption func(*OpenLibraryClient)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *OpenLibraryClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithUserAgent(ua string) ClientOption {
	return func(c *OpenLibraryClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or negative disables
// the limit.
func WithRateLimit(rps float64) ClientOption {
	return func(c *OpenLibraryClient) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewOpenLibraryClient creates a new OpenLibrary API client limited to one
// request per second.
func NewOpenLibraryClient(opts ...ClientOption) *OpenLibraryClient {
	c := &OpenLibraryClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:   "https://openlibrary.org",
		coversURL: "https://covers.openlibrary.org",
		userAgent: "Bookshelf/1.0",
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchByISBN looks up a single edition by ISBN.
func (c *OpenLibraryClient) SearchByISBN(ctx context.Context, isbn string) (*BookMetadata, error) {
	isbn = normalizeISBN(isbn)
	if isbn == "" {
		return nil, fmt.Errorf("invalid ISBN")
	}

	var edition openLibraryEdition
	status, err := c.getJSON(ctx, fmt.Sprintf("%s/isbn/%s.json", c.baseURL, isbn), &edition)
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: ISBN %s", ErrNoMatch, isbn)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch ISBN data: %w", err)
	}

	return &BookMetadata{
		Title:          edition.Title,
		ISBN:           isbn,
		CoverURL:       c.isbnCover(isbn),
		OpenLibraryKey: edition.Key,
	}, nil
}

// SearchByTitle looks up a book by title and author, returning the best match.
func (c *OpenLibraryClient) SearchByTitle(ctx context.Context, title, author string) (*BookMetadata, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	q := title
	if author != "" {
		q = title + " " + author
	}
	searchURL := fmt.Sprintf("%s/search.json?q=%s&limit=5", c.baseURL, url.QueryEscape(q))

	var result openLibrarySearchResult
	if _, err := c.getJSON(ctx, searchURL, &result); err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	if len(result.Docs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, title)
	}

	return c.toMetadata(findBestMatch(result.Docs, title, author)), nil
}

func (c *OpenLibraryClient) getJSON(ctx context.Context, rawURL string, out any) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func (c *OpenLibraryClient) toMetadata(doc *openLibrarySearchDoc) *BookMetadata {
	m := &BookMetadata{
		Title:          doc.Title,
		OpenLibraryKey: doc.Key,
	}
	if len(doc.AuthorName) > 0 {
		m.Author = doc.AuthorName[0]
	}
	if len(doc.ISBN) > 0 {
		m.ISBN = doc.ISBN[0]
	}

	switch {
	case doc.CoverI != 0:
		m.CoverURL = fmt.Sprintf("%s/b/id/%d-L.jpg", c.coversURL, doc.CoverI)
	case m.ISBN != "":
		m.CoverURL = c.isbnCover(m.ISBN)
	}
	return m
}

func (c *OpenLibraryClient) isbnCover(isbn string) string {
	return fmt.Sprintf("%s/b/isbn/%s-L.jpg", c.coversURL, isbn)
}

// findBestMatch scores docs by title and author similarity, preferring
// entries that carry a cover.
func findBestMatch(docs []openLibrarySearchDoc, title, author string) *openLibrarySearchDoc {
	titleLower := strings.ToLower(strings.TrimSpace(title))
	authorLower := strings.ToLower(strings.TrimSpace(author))

	var bestMatch *openLibrarySearchDoc
	bestScore := -1

	for i := range docs {
		doc := &docs[i]
		score := 0

		docTitle := strings.ToLower(doc.Title)
		if docTitle == titleLower {
			score += 10
		} else if strings.Contains(docTitle, titleLower) {
			score += 5
		}

		if authorLower != "" {
			for _, docAuthor := range doc.AuthorName {
				docAuthor = strings.ToLower(docAuthor)
				if docAuthor == authorLower {
					score += 10
					break
				} else if strings.Contains(docAuthor, authorLower) {
					score += 5
					break
				}
			}
		}

		if doc.CoverI != 0 {
			score += 3
		}
		if len(doc.ISBN) > 0 {
			score++
		}

		if score > bestScore {
			bestScore = score
			bestMatch = doc
		}
	}

	return bestMatch
}

// normalizeISBN removes hyphens and spaces from ISBN.
func normalizeISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	isbn = strings.ReplaceAll(isbn, " ", "")
	isbn = strings.TrimSpace(isbn)

	if len(isbn) != 10 && len(isbn) != 13 {
		return ""
	}
	return isbn
}

// OpenLibrary API response types (internal)

type openLibrarySearchResult struct {
	NumFound int                    `json:"numFound"`
	Docs     []openLibrarySearchDoc `json:"docs"`
}

type openLibrarySearchDoc struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	ISBN       []string `json:"isbn"`
	CoverI     int      `json:"cover_i"`
}

type openLibraryEdition struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}
