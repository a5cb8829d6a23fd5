package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// InspectionFeed godoc
// @Summary      점검 제출 실시간 피드 (WebSocket)
// @Description  제출 완료(inspection.submitted) 및 준수 처리(compliance.resolved) 이벤트를 JSON으로 전송합니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.** `ws://` 또는 `wss://` 스킴으로 연결해야 합니다.
// @Tags         WebSocket
// @Success      101 {string} string "101 Switching Protocols"
// @Router       /ws/inspections [get]
func (h *Handler) InspectionFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("InspectionFeed(): failed to upgrade to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	feed, cancel := h.hub.Subscribe()
	defer cancel()
	log.Printf("InspectionFeed(): client %s connected (%d subscribers)", c.ClientIP(), h.hub.Subscribers())

	// 클라이언트 메시지는 무시, 연결 종료만 감지
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-feed:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("InspectionFeed(): failed to send event to %s: %v", c.ClientIP(), err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-closed:
			log.Printf("InspectionFeed(): client %s disconnected", c.ClientIP())
			return
		}
	}
}
