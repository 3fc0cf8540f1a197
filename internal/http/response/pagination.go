package response

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Page is the page/limit window requested by the client.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int { return (p.Number - 1) * p.Limit }

// Paginated is the list envelope: total count, neighbour page links and the current page.
type Paginated[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// ParsePage reads ?page= and ?limit=. Garbage falls back to the defaults,
// limit is capped at maxLimit and page so that the offset cannot overflow.
func ParsePage(c *gin.Context, defaultLimit, maxLimit int) Page {
	if defaultLimit <= 0 {
		defaultLimit = 6
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	p := Page{Number: 1, Limit: defaultLimit}
	if n, err := strconv.Atoi(strings.TrimSpace(c.Query("page"))); err == nil && n > 0 {
		p.Number = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(c.Query("limit"))); err == nil && n > 0 {
		p.Limit = n
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	// keep Number*Limit inside the range SQL offsets accept
	if maxNumber := math.MaxInt32 / p.Limit; p.Number > maxNumber {
		p.Number = maxNumber
	}
	return p
}

func NewPaginated[T any](c *gin.Context, page Page, total int64, results []T) Paginated[T] {
	if results == nil {
		results = []T{}
	}
	out := Paginated[T]{Count: total, Results: results}
	if int64(page.Number)*int64(page.Limit) < total {
		next := pageURL(c, page.Number+1)
		out.Next = &next
	}
	if page.Number > 1 {
		prev := pageURL(c, page.Number-1)
		out.Previous = &prev
	}
	return out
}

func pageURL(c *gin.Context, number int) string {
	u := url.URL{
		Scheme: requestScheme(c),
		Host:   c.Request.Host,
		Path:   c.Request.URL.Path,
	}
	q := c.Request.URL.Query()
	if number <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func requestScheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}

// ParseRecipesLimit honours ?recipes_limit= only when it is a non-negative
// integer; anything else means no cap, reported as -1.
func ParseRecipesLimit(c *gin.Context) int {
	raw := strings.TrimSpace(c.Query("recipes_limit"))
	if raw == "" {
		return -1
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return -1
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}
