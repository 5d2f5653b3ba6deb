package notify

import (
	"context"
	"log/slog"

	"protexai/internal/rules"
)

// NoopNotifier is used when no notification channel is configured. Events
// are still logged so local runs show what would have been sent.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

// Notify logs the event and discards it.
func (n *NoopNotifier) Notify(_ context.Context, event rules.Event) error {
	slog.Info("Rule event (notifications disabled)",
		"rule", event.RuleName, "camera", event.CameraName, "frame", event.FrameNum, "roi", event.ROIIndex)
	return nil
}
