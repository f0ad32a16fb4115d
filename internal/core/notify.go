package core

import (
	"context"
	"log/slog"
	"sync"
)

// NotifyKind classifies a notification.
type NotifyKind string

const (
	NotifySuccess NotifyKind = "success"
	NotifyError   NotifyKind = "error"
	NotifyInfo    NotifyKind = "info"
	NotifyWarning NotifyKind = "warning"
)

// Notifier reports outcomes to the user. Calls are fire-and-forget.
type Notifier interface {
	Notify(kind NotifyKind, title, message string)
}

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(kind NotifyKind, title, message string) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	switch kind {
	case NotifyError:
		level = slog.LevelError
	case NotifyWarning:
		level = slog.LevelWarn
	}
	logger.Log(context.Background(), level, "notification", "kind", string(kind), "title", title, "message", message)
}

// Notification is one queued toast.
type Notification struct {
	Kind    NotifyKind
	Title   string
	Message string
}

// FlashNotifier queues notifications until the next page render drains them.
// It also forwards each one to Next when set.
type FlashNotifier struct {
	Next Notifier

	mu    sync.Mutex
	queue []Notification
}

// Notify implements Notifier.
func (n *FlashNotifier) Notify(kind NotifyKind, title, message string) {
	n.mu.Lock()
	n.queue = append(n.queue, Notification{Kind: kind, Title: title, Message: message})
	n.mu.Unlock()

	if n.Next != nil {
		n.Next.Notify(kind, title, message)
	}
}

// Drain returns and clears the queued notifications.
func (n *FlashNotifier) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := n.queue
	n.queue = nil
	return out
}

// Pending returns the number of queued notifications.
func (n *FlashNotifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.queue)
}
