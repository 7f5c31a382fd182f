package people

import "log/slog"

// Notifiable is implemented by parties that can receive notifications.
type Notifiable interface {
	// NotificationContact returns the address notifications go to.
	NotificationContact() string
	// FullName returns the party's display name.
	FullName() string
}

// Notifier delivers a message to a notifiable party.
type Notifier interface {
	Notify(target Notifiable, message string)
}

// LogNotifier delivers notifications to a logger. It stands in for a real
// delivery channel; the persistence core only needs the capability surface.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a notifier writing to log. A nil logger falls back
// to slog.Default.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

// Notify implements [Notifier].
func (n *LogNotifier) Notify(target Notifiable, message string) {
	n.log.Info("notification", "to", target.FullName(), "contact", target.NotificationContact(), "message", message)
}
