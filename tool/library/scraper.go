package library

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/simmyhq/simmy/pubsub"
	"github.com/simmyhq/simmy/tool"
)

// Scraper returns a tool that fetches a page and extracts its readable
// text, dropping markup, scripts and styles.
func Scraper() tool.Definition {
	return tool.Must("scraper", runScraper,
		tool.Description("Fetch a webpage and extract its title and readable text content."),
		tool.Parameters(tool.Object([]string{"url"},
			tool.P("url", tool.String("The URL of the webpage to scrape.")),
		)),
	)
}

func runScraper(_ *pubsub.Bus, args tool.Args) (string, error) {
	url := args.String("url")

	resp, err := httpClient.Get(url)
	if err != nil {
		return "", fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing %s failed: %w", url, err)
	}

	doc.Find("script, style, noscript").Remove()
	title := strings.TrimSpace(doc.Find("title").Text())
	text := truncate(condenseWhitespace(doc.Find("body").Text()), maxBodyBytes)

	return fmt.Sprintf("Title: %s\n\n%s", title, text), nil
}

// truncate cuts s to at most max bytes, backing off to a rune boundary so
// the result stays valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func condenseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
