package handler

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"cadastre/config"
	"cadastre/internal/delivery/notifier/hub"
	"cadastre/internal/domain/service"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxInboundSize = 512
)

// WSHandler upgrades authenticated staff sessions to websockets fed by the hub.
type WSHandler struct {
	tokenSvc service.TokenService
	hub      *hub.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// WSHandlerParams holds dependencies for the WSHandler
type WSHandlerParams struct {
	fx.In

	Config       *config.Config
	Logger       *slog.Logger
	TokenService service.TokenService
	Hub          *hub.Hub
}

// NewWSHandler creates the websocket handler.
func NewWSHandler(params WSHandlerParams) *WSHandler {
	var allowed []string
	if params.Config.Notifier != nil {
		allowed = params.Config.Notifier.AllowedOrigins
	}

	return &WSHandler{
		tokenSvc: params.TokenService,
		hub:      params.Hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowed),
		},
		logger: params.Logger,
	}
}

// empty allowed list accepts any origin
func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if len(allowed) == 0 || origin == "" {
			return true
		}

		return slices.Contains(allowed, origin)
	}
}

// Serve authenticates the access token from ?token= (browsers cannot set headers
// on websocket requests) or the Authorization header, then streams events until
// the client goes away.
func (h *WSHandler) Serve(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		token, _ = strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
	}
	claims, err := h.tokenSvc.ValidateToken(token)
	if err != nil || claims.Type != service.TokenTypeAccess || claims.UserID == uuid.Nil {
		return c.NoContent(http.StatusUnauthorized)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader already answered the request.
		h.logger.Warn("[Notifier] Websocket upgrade failed", slog.Any("error", err))

		return nil
	}

	client := h.hub.Register(claims.UserID)
	h.logger.Info("[Notifier] Client connected",
		slog.String("user_id", claims.UserID.String()),
		slog.Int("clients", h.hub.Len()),
	)

	go h.writePump(conn, client)
	h.readPump(conn, client)

	return nil
}

// readPump keeps the connection alive and notices when the client leaves.
func (h *WSHandler) readPump(conn *websocket.Conn, client *hub.Client) {
	defer func() {
		h.hub.Unregister(client)
		_ = conn.Close()
		h.logger.Info("[Notifier] Client disconnected", slog.String("user_id", client.UserID.String()))
	}()

	conn.SetReadLimit(maxInboundSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *WSHandler) writePump(conn *websocket.Conn, client *hub.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Send():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Dropped by the hub or shutting down.
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))

				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
