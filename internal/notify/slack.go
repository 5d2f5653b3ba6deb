package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"protexai/internal/rules"
)

// chatPoster is the slice of the Slack client the notifier needs.
type chatPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackNotifier delivers rule events to a Slack channel.
type SlackNotifier struct {
	client  chatPoster
	channel string
}

// NewSlackNotifier creates a notifier for the given bot token and channel.
// The channel is required whenever a token is configured; failing here beats
// failing at the first event.
func NewSlackNotifier(token, channel string) (*SlackNotifier, error) {
	if token == "" {
		return nil, fmt.Errorf("slack token is required")
	}
	if channel == "" {
		return nil, fmt.Errorf("SLACK_CHANNEL must be set when SLACK_TOKEN is present")
	}

	return &SlackNotifier{
		client:  slack.New(token),
		channel: channel,
	}, nil
}

// Notify posts the event as a Slack message with section blocks.
func (n *SlackNotifier) Notify(ctx context.Context, event rules.Event) error {
	details := fmt.Sprintf("*Rule Name:* %s\n*When:* %s after origin\n*Camera Name:* %s",
		event.RuleName, formatOffset(event.Timestamp), event.CameraName)

	header := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, ":warning: *A new event has occurred:*", false, false),
		nil, nil,
	)
	body := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, details, false, false),
		nil, nil,
	)

	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText("*A new event has occurred:*\n"+details, false),
		slack.MsgOptionBlocks(header, body),
	)
	if err != nil {
		return fmt.Errorf("failed to post Slack message: %w", err)
	}
	return nil
}

// formatOffset humanizes a stream offset in nanoseconds, folded into a 24h
// day ("2 hours 5 minutes 30 seconds").
func formatOffset(timestamp int64) string {
	seconds := timestamp / 1_000_000_000
	seconds %= 24 * 3600

	hours := seconds / 3600
	seconds %= 3600
	minutes := seconds / 60
	seconds %= 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hours", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minutes", minutes))
	}
	if seconds > 0 {
		parts = append(parts, fmt.Sprintf("%d seconds", seconds))
	}
	if len(parts) == 0 {
		return "0 seconds"
	}

	return strings.Join(parts, " ")
}
