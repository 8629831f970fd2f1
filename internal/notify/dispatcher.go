package notify

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

// Defaults applied when the configuration leaves a field zero.
const (
	DefaultQueueSize = 64
	DefaultTimeout   = 10 * time.Second
)

// Dispatcher queues alerts and delivers them on one worker goroutine.
// Notify never blocks; when the queue is full the alert is dropped.
type Dispatcher struct {
	senders []Sender
	timeout time.Duration
	logger  *zap.Logger
	queue   chan string

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher returns a dispatcher for senders. It delivers nothing until
// Run is called.
func NewDispatcher(logger *zap.Logger, senders []Sender, queueSize int, timeout time.Duration) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		senders: senders,
		timeout: timeout,
		logger:  logger.Named("notify"),
		queue:   make(chan string, queueSize),
	}
}

// FromConfig builds a dispatcher with a sender for each configured channel.
// Telegram needs both a token and a chat id.
func FromConfig(logger *zap.Logger, cfg types.NotifyConfig) *Dispatcher {
	client := &http.Client{}
	var senders []Sender
	if url := strings.TrimSpace(cfg.DiscordWebhookURL); url != "" {
		senders = append(senders, NewDiscordSender(url, client))
	}
	token := strings.TrimSpace(cfg.TelegramBotToken)
	chatID := strings.TrimSpace(cfg.TelegramChatID)
	if token != "" && chatID != "" {
		senders = append(senders, NewTelegramSender(cfg.TelegramAPIURL, token, chatID, client))
	}
	return NewDispatcher(logger, senders, cfg.QueueSize, cfg.Timeout)
}

// Senders returns the names of the configured senders.
func (d *Dispatcher) Senders() []string {
	names := make([]string, len(d.senders))
	for i, s := range d.senders {
		names[i] = s.Name()
	}
	return names
}

// Notify enqueues text for delivery. It returns immediately.
func (d *Dispatcher) Notify(text string) {
	if len(d.senders) == 0 {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn("dispatcher stopped, alert dropped")
		return
	}

	select {
	case d.queue <- text:
	default:
		d.logger.Warn("alert queue full, alert dropped", zap.Int("capacity", cap(d.queue)))
	}
}

// Run delivers queued alerts until ctx is cancelled, then closes the queue
// and delivers what is left before returning. Run must be called at most
// once.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case text := <-d.queue:
			d.deliver(text)
		case <-ctx.Done():
			d.mu.Lock()
			d.closed = true
			close(d.queue)
			d.mu.Unlock()

			for text := range d.queue {
				d.deliver(text)
			}
			return nil
		}
	}
}

// deliver hands text to every sender. Each send gets its own timeout so a
// slow channel cannot starve the others.
func (d *Dispatcher) deliver(text string) {
	for _, s := range d.senders {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := s.Send(ctx, text)
		cancel()
		if err != nil {
			d.logger.Warn("lead alert failed", zap.String("sender", s.Name()), zap.Error(err))
			continue
		}
		d.logger.Debug("lead alert sent", zap.String("sender", s.Name()))
	}
}
