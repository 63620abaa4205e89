package routes

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// a origem já foi filtrada pelo middleware de CORS
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub distribui registros de ponto confirmados para os painéis
// conectados (feed ao vivo das unidades).
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]struct{})}
}

// ServeWS registra a conexão e segura o leitor até o painel desconectar.
func (h *Hub) ServeWS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			zap.S().Warnw("falha no upgrade do websocket", "erro", err)
			return
		}

		h.mu.Lock()
		h.conns[conn] = struct{}{}
		h.mu.Unlock()

		go func() {
			defer h.remove(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

// Broadcast envia o payload para todas as conexões; conexões mortas são
// removidas na hora.
func (h *Hub) Broadcast(v any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(v); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conn.Close()
	delete(h.conns, conn)
}
