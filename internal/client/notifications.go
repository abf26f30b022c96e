package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/zayo-client/internal/cache"
	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

const notificationCachePrefix = "notification:"

// NotificationsClient implements zayo.NotificationsClient.
type NotificationsClient struct {
	client *Client
}

// NewNotificationsClient creates a new notifications client.
func NewNotificationsClient(client *Client) *NotificationsClient {
	return &NotificationsClient{client: client}
}

// ListByCase implements zayo.NotificationsClient.ListByCase.
func (c *NotificationsClient) ListByCase(ctx context.Context, caseNumber string) ([]zayo.Notification, error) {
	caseNumber = strings.TrimSpace(caseNumber)
	if caseNumber == "" {
		return nil, zayo.ErrCaseNumberRequired
	}

	path := fmt.Sprintf(c.client.routes.NotificationsByCase, url.PathEscape(caseNumber))

	data, err := getRecord(ctx, c.client, path)
	if err != nil {
		return nil, fmt.Errorf("listing notifications for case %s: %w", caseNumber, err)
	}

	notifications := []zayo.Notification{}

	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &notifications); err != nil {
			return nil, fmt.Errorf("%w: notifications for case %s: %w", zayo.ErrMalformedResponse, caseNumber, err)
		}
	}

	return notifications, nil
}

// Get implements zayo.NotificationsClient.Get. Details are served from the
// record cache when present.
func (c *NotificationsClient) Get(ctx context.Context, name string) (*zayo.NotificationDetail, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, zayo.ErrNotificationNameReq
	}

	key := notificationCachePrefix + name

	entry, err := c.client.cache.Get(ctx, key)
	if err == nil {
		detail, decodeErr := decodeNotificationDetail(entry.Data, name)
		if decodeErr == nil {
			return detail, nil
		}

		_ = c.client.cache.Delete(ctx, key)
	} else if !errors.Is(err, cache.ErrCacheMiss) && !errors.Is(err, cache.ErrCacheDisabled) {
		c.client.logger.Warn("record cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	path := fmt.Sprintf(c.client.routes.NotificationByName, url.PathEscape(name))

	data, err := getRecord(ctx, c.client, path)
	if err != nil {
		return nil, fmt.Errorf("getting notification %s: %w", name, err)
	}

	detail, err := decodeNotificationDetail(data, name)
	if err != nil {
		return nil, err
	}

	if err := c.client.cache.Set(ctx, key, cache.NewEntry(data, c.client.cacheTTL)); err != nil {
		c.client.logger.Warn("record cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	return detail, nil
}

func decodeNotificationDetail(data []byte, name string) (*zayo.NotificationDetail, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, fmt.Errorf("%w: notification %s has no data", zayo.ErrMalformedResponse, name)
	}

	var detail zayo.NotificationDetail

	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, fmt.Errorf("%w: notification %s: %w", zayo.ErrMalformedResponse, name, err)
	}

	return &detail, nil
}

var _ zayo.NotificationsClient = (*NotificationsClient)(nil)
