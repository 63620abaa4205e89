package routes

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefeitura-itaguai/biometrico-saude/models"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub.ServeWS())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// dá tempo do hub registrar a conexão antes do broadcast
	time.Sleep(50 * time.Millisecond)

	entrada := "08:00:00"
	hub.Broadcast(models.RegistroPonto{
		ID: 7, FuncionarioID: 3, Data: "2025-03-23", HoraEntrada: &entrada,
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var reg models.RegistroPonto
	require.NoError(t, conn.ReadJSON(&reg))
	assert.Equal(t, int32(7), reg.ID)
	assert.Equal(t, "2025-03-23", reg.Data)
}

func TestHubBroadcastSemConexoes(t *testing.T) {
	hub := NewHub()
	// não pode entrar em pânico sem painéis conectados
	hub.Broadcast(map[string]string{"ping": "pong"})
}
