package app

import (
	"fmt"
	"os"

	"protexai/internal/notify"
	"protexai/internal/rules"
)

// NotifierFactory provides methods to create event notifiers based on string
// identifiers, decoupling the workflow orchestration from concrete notifier
// implementations.
type NotifierFactory struct{}

// NewNotifierFactory creates a new instance of NotifierFactory.
func NewNotifierFactory() *NotifierFactory {
	return &NotifierFactory{}
}

// GetNotifier returns the notifier implementation for the given provider name.
func (f *NotifierFactory) GetNotifier(providerName string) (rules.Notifier, error) {
	switch providerName {
	case "slack":
		notifier, err := notify.NewSlackNotifier(os.Getenv("SLACK_TOKEN"), os.Getenv("SLACK_CHANNEL"))
		if err != nil {
			return nil, fmt.Errorf("failed to create Slack notifier: %w", err)
		}
		return notifier, nil
	case "none", "":
		return notify.NewNoopNotifier(), nil
	default:
		return nil, fmt.Errorf("unsupported notifier: %s", providerName)
	}
}

// FromEnv selects the notifier from the environment: Slack when SLACK_TOKEN
// is set, otherwise the no-op notifier.
func (f *NotifierFactory) FromEnv() (rules.Notifier, error) {
	if os.Getenv("SLACK_TOKEN") != "" {
		return f.GetNotifier("slack")
	}
	return f.GetNotifier("none")
}
