package clients

import (
	"context"
	"fmt"

	ws "faco-weekly/internal/transport/websocket"
)

// WebSocketClient pushes run lifecycle notifications to the user that
// triggered the run.
type WebSocketClient struct {
	hub *ws.Hub
}

func NewWebSocketClient(hub *ws.Hub) *WebSocketClient {
	return &WebSocketClient{hub: hub}
}

func (c *WebSocketClient) NotifyRunProgress(ctx context.Context, userID int64, runID string, progress float64, stage string) error {
	if c.hub == nil {
		return nil
	}

	data := map[string]interface{}{
		"id":       runID,
		"progress": progress,
	}
	if stage != "" {
		data["stage"] = stage
	}

	c.hub.Broadcast(userID, &ws.Message{
		Type:    "run_progress",
		Channel: fmt.Sprintf("notify_user_of_run_progress#%d", userID),
		Data:    data,
	})
	return nil
}

func (c *WebSocketClient) NotifyRunComplete(ctx context.Context, userID int64, runID, url, filename string) error {
	if c.hub == nil {
		return nil
	}

	c.hub.Broadcast(userID, &ws.Message{
		Type:    "run_complete",
		Channel: fmt.Sprintf("notify_user_when_run_complete#%d", userID),
		Data: map[string]interface{}{
			"id":       runID,
			"url":      url,
			"filename": filename,
			"user_id":  userID,
		},
	})
	return nil
}

func (c *WebSocketClient) NotifyRunFailed(ctx context.Context, userID int64, runID, errMsg string) error {
	if c.hub == nil {
		return nil
	}

	c.hub.Broadcast(userID, &ws.Message{
		Type:    "run_failed",
		Channel: fmt.Sprintf("notify_user_when_run_failed#%d", userID),
		Data: map[string]interface{}{
			"id":      runID,
			"message": errMsg,
			"user_id": userID,
		},
	})
	return nil
}
