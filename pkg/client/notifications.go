package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type Notification struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type notificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}

const pollInterval = 30 * time.Second

// Poller - background notification polling. Stop cancels the context
// handed to the goroutine; an already in-flight fetch completes but its
// result is discarded
type Poller struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (p *Poller) Stop() {
	p.cancel()
	<-p.done
}

// PollNotifications - immediate fetch, then one fetch every 30 seconds
// until the context is cancelled. onUpdate runs on the poller goroutine
func (c *Client) PollNotifications(ctx context.Context, onUpdate func(notifications []Notification, unread int)) *Poller {
	ctx, cancel := context.WithCancel(ctx)
	p := &Poller{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(p.done)

		c.pollOnce(ctx, onUpdate)

		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.pollOnce(ctx, onUpdate)
			}
		}
	}()

	return p
}

func (c *Client) pollOnce(ctx context.Context, onUpdate func([]Notification, int)) {
	notifications, unread, err := c.FetchNotifications(ctx)
	if err != nil {
		return
	}
	// a fetch that raced the cancellation must not fire the callback
	if ctx.Err() != nil {
		return
	}
	onUpdate(notifications, unread)
}

func (c *Client) FetchNotifications(ctx context.Context) ([]Notification, int, error) {
	var res notificationList
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &res); err != nil {
		return nil, 0, err
	}

	c.notifMu.Lock()
	c.notifications = res.Notifications
	c.unread = res.UnreadCount
	c.notifMu.Unlock()

	return res.Notifications, res.UnreadCount, nil
}

// Notifications - last fetched list plus unread count
func (c *Client) Notifications() ([]Notification, int) {
	c.notifMu.Lock()
	defer c.notifMu.Unlock()
	return append([]Notification(nil), c.notifications...), c.unread
}

// MarkNotificationRead - server truth when reachable, optimistic local
// mutation when not, so the badge never sticks on a flaky connection
func (c *Client) MarkNotificationRead(ctx context.Context, id int) ([]Notification, int, error) {
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/notifications/%d/read", id), nil, nil)
	if err != nil {
		notifications, unread := c.markReadLocally(id)
		return notifications, unread, nil
	}
	return c.FetchNotifications(ctx)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) ([]Notification, int, error) {
	err := c.do(ctx, http.MethodPatch, "/notifications/read-all", nil, nil)
	if err != nil {
		c.notifMu.Lock()
		for i := range c.notifications {
			c.notifications[i].IsRead = true
		}
		c.unread = 0
		notifications := append([]Notification(nil), c.notifications...)
		c.notifMu.Unlock()
		return notifications, 0, nil
	}
	return c.FetchNotifications(ctx)
}

func (c *Client) DeleteNotification(ctx context.Context, id int) ([]Notification, int, error) {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/notifications/%d", id), nil, nil)
	if err != nil {
		notifications, unread := c.deleteLocally(id)
		return notifications, unread, nil
	}
	return c.FetchNotifications(ctx)
}

func (c *Client) markReadLocally(id int) ([]Notification, int) {
	c.notifMu.Lock()
	defer c.notifMu.Unlock()

	for i := range c.notifications {
		if c.notifications[i].ID == id && !c.notifications[i].IsRead {
			c.notifications[i].IsRead = true
			if c.unread > 0 {
				c.unread--
			}
		}
	}
	return append([]Notification(nil), c.notifications...), c.unread
}

func (c *Client) deleteLocally(id int) ([]Notification, int) {
	c.notifMu.Lock()
	defer c.notifMu.Unlock()

	kept := c.notifications[:0]
	for _, n := range c.notifications {
		if n.ID == id {
			if !n.IsRead && c.unread > 0 {
				c.unread--
			}
			continue
		}
		kept = append(kept, n)
	}
	c.notifications = kept
	return append([]Notification(nil), c.notifications...), c.unread
}
