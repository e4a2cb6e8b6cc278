package controllers

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"fleetdesk/internal/history"
)

// TrackingHub manages live-view WebSocket connections per device and fans
// out ingested fixes to everyone watching that device.
type TrackingHub struct {
	watchers  map[string]map[*websocket.Conn]bool
	broadcast chan history.Point
	mu        sync.Mutex
}

// NewTrackingHub creates a hub and starts its broadcast loop.
func NewTrackingHub() *TrackingHub {
	hub := &TrackingHub{
		watchers:  make(map[string]map[*websocket.Conn]bool),
		broadcast: make(chan history.Point, 100),
	}
	go hub.run()
	return hub
}

func (h *TrackingHub) run() {
	for point := range h.broadcast {
		h.mu.Lock()
		if conns, exists := h.watchers[point.Device]; exists {
			for conn := range conns {
				go func(c *websocket.Conn, p history.Point) {
					err := c.WriteJSON(map[string]interface{}{"type": "live", "point": p})
					if err != nil {
						if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
							h.Unwatch(p.Device, c)
						} else {
							logrus.WithError(err).WithFields(logrus.Fields{
								"device":   p.Device,
								"conn_ptr": fmt.Sprintf("%p", c),
							}).Warn("Failed to send live fix to watcher.")
						}
					}
				}(conn, point)
			}
		}
		h.mu.Unlock()
	}
}

// Watch registers a connection as a watcher of one device.
func (h *TrackingHub) Watch(device string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.watchers[device]; !ok {
		h.watchers[device] = make(map[*websocket.Conn]bool)
	}
	h.watchers[device][conn] = true
	logrus.WithFields(logrus.Fields{
		"device":   device,
		"conn_ptr": fmt.Sprintf("%p", conn),
	}).Info("Watcher registered with TrackingHub.")
}

// Unwatch removes a watcher connection.
func (h *TrackingHub) Unwatch(device string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.watchers[device]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.watchers, device)
		}
	}
	logrus.WithFields(logrus.Fields{
		"device":   device,
		"conn_ptr": fmt.Sprintf("%p", conn),
	}).Info("Watcher unregistered from TrackingHub.")
}

// Publish queues an ingested fix for broadcast to its device's watchers.
func (h *TrackingHub) Publish(point history.Point) {
	select {
	case h.broadcast <- point:
	default:
		logrus.Warn("Live broadcast channel full, dropping fix.")
	}
}

var trackingHub = NewTrackingHub()
