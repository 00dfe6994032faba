package api

import (
	"net/http"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/order"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/realtime"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/utils"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type FeedHandler struct {
	hub *realtime.Hub
}

func NewFeedHandler(hub *realtime.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

// Subscribe upgrades to a websocket and streams the caller's order events.
// Suppliers receive their own orders; admins receive everything.
func (h *FeedHandler) Subscribe(c echo.Context) error {
	ctx := c.Request().Context()

	var supplierID string
	switch utils.GetUserRoleFromContext(ctx) {
	case utils.RoleAdmin:
		// empty supplier id subscribes to all events
	case utils.RoleSupplier:
		id, ok := utils.GetSupplierIDFromContext(ctx)
		if !ok {
			return respondError(c, order.ErrUnauthorized)
		}
		supplierID = id
	default:
		return respondError(c, order.ErrUnauthorized)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := h.hub.Register(supplierID, conn)
	defer h.hub.Unregister(client)

	// Read loop only detects disconnects; the feed is one-way.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}
