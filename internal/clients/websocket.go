package clients

import (
	"context"

	ws "library-fees/internal/transport/websocket"
)

// WebSocketClient publishes export lifecycle events on the exports topic.
type WebSocketClient struct {
	hub *ws.Hub
}

func NewWebSocketClient(hub *ws.Hub) *WebSocketClient {
	return &WebSocketClient{
		hub: hub,
	}
}

func (c *WebSocketClient) NotifyExportProgress(ctx context.Context, exportID string, progress float64, stage string) error {
	if c.hub == nil {
		return nil
	}

	data := map[string]interface{}{
		"id":       exportID,
		"progress": progress,
	}
	if stage != "" {
		data["stage"] = stage
	}

	c.hub.Broadcast(ws.TopicExports, &ws.Message{
		Type:    "export_progress",
		Channel: "export_progress#" + exportID,
		Data:    data,
	})
	return nil
}

func (c *WebSocketClient) NotifyExportComplete(ctx context.Context, exportID, url, filename string) error {
	if c.hub == nil {
		return nil
	}

	c.hub.Broadcast(ws.TopicExports, &ws.Message{
		Type:    "export_complete",
		Channel: "export_complete#" + exportID,
		Data: map[string]interface{}{
			"id":       exportID,
			"url":      url,
			"filename": filename,
		},
	})
	return nil
}

func (c *WebSocketClient) NotifyExportFailed(ctx context.Context, exportID, errMsg string) error {
	if c.hub == nil {
		return nil
	}

	c.hub.Broadcast(ws.TopicExports, &ws.Message{
		Type:    "export_failed",
		Channel: "export_failed#" + exportID,
		Data: map[string]interface{}{
			"id":      exportID,
			"message": errMsg,
		},
	})
	return nil
}
