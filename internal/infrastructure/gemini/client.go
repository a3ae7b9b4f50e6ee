package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(apiKey string) (*Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

// GenerateIcebreaker produces one short opening line two freshly matched
// music students could start a conversation with.
func (c *Client) GenerateIcebreaker(ctx context.Context, desc1, desc2 string) (string, error) {
	prompt := fmt.Sprintf(`
		Two music students just matched in a dating bot.
		Student 1 about themselves: %q
		Student 2 about themselves: %q

		Task: Write one short, friendly opening line (a single sentence) one
		of them could send to the other. Mention music or a shared interest.
		Language: Russian.
		Output: just the line, no quotes, no markdown.
	`, desc1, desc2)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	line := strings.TrimSpace(sb.String())
	line = strings.TrimPrefix(line, "```")
	line = strings.TrimSuffix(line, "```")
	return strings.TrimSpace(line), nil
}
