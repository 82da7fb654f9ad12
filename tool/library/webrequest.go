package library

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/simmyhq/simmy/pubsub"
	"github.com/simmyhq/simmy/tool"
)

// maxBodyBytes caps how much of a response body is fed back into the
// conversation.
const maxBodyBytes = 64 * 1024

var httpClient = &http.Client{Timeout: 30 * time.Second}

// WebRequest returns a tool that performs an HTTP GET and returns the
// response body as text.
func WebRequest() tool.Definition {
	return tool.Must("web_request", runWebRequest,
		tool.Description("Make an HTTP GET request to a URL and return the response body."),
		tool.Parameters(tool.Object([]string{"url"},
			tool.P("url", tool.String("The URL to request.")),
		)),
	)
}

func runWebRequest(_ *pubsub.Bus, args tool.Args) (string, error) {
	url := args.String("url")

	resp, err := httpClient.Get(url)
	if err != nil {
		return "", fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("reading response from %s failed: %w", url, err)
	}
	return fmt.Sprintf("Status: %s\n\n%s", resp.Status, body), nil
}
