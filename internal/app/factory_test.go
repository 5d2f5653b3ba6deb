package app

import (
	"strings"
	"testing"

	"protexai/internal/notify"
)

func TestNotifierFactory_GetNotifier(t *testing.T) {
	factory := NewNotifierFactory()

	tests := []struct {
		name         string
		providerName string
		token        string
		channel      string
		expectError  bool
		errorMsg     string
	}{
		{
			name:         "Slack with token and channel",
			providerName: "slack",
			token:        "xoxb-test",
			channel:      "#alerts",
			expectError:  false,
		},
		{
			name:         "Slack without token",
			providerName: "slack",
			expectError:  true,
			errorMsg:     "failed to create Slack notifier",
		},
		{
			name:         "Slack token without channel",
			providerName: "slack",
			token:        "xoxb-test",
			expectError:  true,
			errorMsg:     "SLACK_CHANNEL must be set",
		},
		{
			name:         "None provider",
			providerName: "none",
			expectError:  false,
		},
		{
			name:         "Empty provider defaults to noop",
			providerName: "",
			expectError:  false,
		},
		{
			name:         "Unsupported provider",
			providerName: "pagerduty",
			expectError:  true,
			errorMsg:     "unsupported notifier: pagerduty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SLACK_TOKEN", tt.token)
			t.Setenv("SLACK_CHANNEL", tt.channel)

			notifier, err := factory.GetNotifier(tt.providerName)

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error message to contain %q, got: %s", tt.errorMsg, err)
				}
				if notifier != nil {
					t.Errorf("Expected notifier to be nil on error, got: %T", notifier)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %s", err)
			}
			if notifier == nil {
				t.Fatal("Expected notifier, got nil")
			}
		})
	}
}

func TestNotifierFactory_FromEnv(t *testing.T) {
	factory := NewNotifierFactory()

	t.Run("No token selects noop", func(t *testing.T) {
		t.Setenv("SLACK_TOKEN", "")
		t.Setenv("SLACK_CHANNEL", "")

		notifier, err := factory.FromEnv()
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		if _, ok := notifier.(*notify.NoopNotifier); !ok {
			t.Errorf("Expected *notify.NoopNotifier, got %T", notifier)
		}
	})

	t.Run("Token selects slack", func(t *testing.T) {
		t.Setenv("SLACK_TOKEN", "xoxb-test")
		t.Setenv("SLACK_CHANNEL", "#alerts")

		notifier, err := factory.FromEnv()
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		if _, ok := notifier.(*notify.SlackNotifier); !ok {
			t.Errorf("Expected *notify.SlackNotifier, got %T", notifier)
		}
	})

	t.Run("Token without channel fails fast", func(t *testing.T) {
		t.Setenv("SLACK_TOKEN", "xoxb-test")
		t.Setenv("SLACK_CHANNEL", "")

		if _, err := factory.FromEnv(); err == nil {
			t.Error("Expected configuration error, got none")
		}
	})
}
