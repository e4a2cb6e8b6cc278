package controllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"fleetdesk/internal/config"
	"fleetdesk/internal/geo"
	"fleetdesk/internal/history"
	"fleetdesk/internal/middleware"
	"fleetdesk/internal/playback"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for development (restrict in production!)
	},
}

// wsSink serializes all writes to one viewer connection; playback frames
// arrive from scheduler goroutines while control replies come from the
// read loop.
type wsSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSink) write(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *wsSink) UpdatePath(path []geo.Coordinate) {
	if err := s.write(map[string]interface{}{"type": "path", "path": path}); err != nil {
		logrus.WithError(err).Debug("Failed to send path to viewer.")
	}
}

func (s *wsSink) PublishFrame(frame playback.Frame) {
	if err := s.write(map[string]interface{}{"type": "frame", "frame": frame}); err != nil {
		logrus.WithError(err).Debug("Failed to send frame to viewer.")
	}
}

// controlMessage is one viewer transport-control command.
type controlMessage struct {
	Action string `json:"action"` // play, pause, speed, seek, seek_violation, step
	Value  int    `json:"value"`
}

// HandleTrackingWebSocket is the Gin handler for all tracking WebSocket
// connections. Viewers authenticate with a JWT query token and pick a mode:
// "live" streams ingested fixes as they arrive, "replay" drives an
// interpolated playback of a stored time range.
func HandleTrackingWebSocket(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication token"})
		return
	}
	claims, err := middleware.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	device := c.Query("device")
	if device == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'device' query parameter"})
		return
	}

	mode := c.Query("mode")
	if mode == "" {
		mode = "live"
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade WebSocket connection.")
		return
	}
	defer conn.Close()

	logrus.WithFields(logrus.Fields{
		"user_id": claims.UserID,
		"device":  device,
		"mode":    mode,
	}).Info("Tracking WebSocket connection established.")

	switch mode {
	case "live":
		handleLiveWebSocket(conn, device)
	case "replay":
		handleReplayWebSocket(conn, device, c.Query("start"), c.Query("end"))
	default:
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unknown mode"))
	}
}

// handleLiveWebSocket registers the viewer with the hub and drains the
// connection until it closes.
func handleLiveWebSocket(conn *websocket.Conn, device string) {
	trackingHub.Watch(device, conn)
	defer trackingHub.Unwatch(device, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).WithField("device", device).Error("Error reading from live watcher.")
			}
			return
		}
		logrus.WithField("device", device).Warn("Live watcher sent unexpected message. Ignoring.")
	}
}

// handleReplayWebSocket owns one playback session for the lifetime of the
// connection. Every exit path closes the session, cancelling its autoplay
// tick and any in-flight animation.
func handleReplayWebSocket(conn *websocket.Conn, device, start, end string) {
	sink := &wsSink{conn: conn}

	startT, err := parseQueryTime(start)
	if err != nil {
		sink.write(gin.H{"type": "error", "error": "invalid 'start' timestamp"})
		return
	}
	endT, err := parseQueryTime(end)
	if err != nil {
		sink.write(gin.H{"type": "error", "error": "invalid 'end' timestamp"})
		return
	}

	store := history.NewStore(config.DB)
	points, err := store.Range(device, startT, endT)
	if err != nil {
		logrus.WithError(err).WithField("device", device).Error("Replay range query failed.")
		sink.write(gin.H{"type": "error", "error": "could not query history"})
		return
	}

	session := playback.NewSession(playback.NewTickScheduler(), sink)
	defer session.Close()

	violations := history.Violations(points)
	sink.write(gin.H{
		"type":       "meta",
		"summary":    history.Summarize(points),
		"violations": violations,
	})
	session.Load(points)

	if len(points) == 0 {
		sink.write(gin.H{"type": "error", "error": "no history for the requested range"})
		// Keep the socket open; the viewer shows the message and may close.
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).WithField("device", device).Error("Error reading from replay viewer.")
			}
			return
		}

		var msg controlMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sink.write(gin.H{"type": "error", "error": "invalid control message"})
			continue
		}

		switch msg.Action {
		case "play":
			session.Play()
		case "pause":
			session.Pause()
		case "speed":
			err = session.SetSpeed(msg.Value)
		case "seek":
			err = session.Seek(msg.Value)
		case "seek_violation":
			if msg.Value < 0 || msg.Value >= len(violations) {
				sink.write(gin.H{"type": "error", "error": "violation ordinal out of range"})
				continue
			}
			err = session.SeekViolation(violations[msg.Value])
		case "step":
			err = session.Step(msg.Value)
		default:
			sink.write(gin.H{"type": "error", "error": "unknown action"})
			continue
		}

		if err != nil {
			sink.write(gin.H{"type": "error", "error": err.Error()})
		}
	}
}
