package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefeitura-itaguai/biometrico-saude/biometrico"
	"github.com/prefeitura-itaguai/biometrico-saude/ponto"
)

func apiFalsa(t *testing.T, registros []map[string]any) *biometrico.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/reg/pontos-unidade":
			json.NewEncoder(w).Encode(registros)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return biometrico.NewClient(srv.URL, time.Minute)
}

func TestListRegistros(t *testing.T) {
	api := apiFalsa(t, []map[string]any{
		{"funcionario_id": 1, "nome": "Maria", "data": "2025-03-23", "hora_entrada": "08:00:00", "hora_saida": "17:00:00"},
		{"funcionario_id": 2, "nome": "João", "data": "23/03/2025", "hora_entrada": "09:00:00"},
	})

	r := httptest.NewRequest(http.MethodGet, "/api/registros?mes=3&ano=2025", nil)
	w := httptest.NewRecorder()
	ListRegistros(api)(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var out []registroResposta
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, ponto.StatusPresente, out[0].Status)
	assert.Equal(t, ponto.StatusEntradaRegistrada, out[1].Status)
	assert.Equal(t, "2025-03-23", out[1].Data, "datas saem normalizadas, qualquer que seja o formato de origem")
}

func TestListRegistrosRemotoFora(t *testing.T) {
	api := biometrico.NewClient("http://127.0.0.1:1", time.Minute)

	r := httptest.NewRequest(http.MethodGet, "/api/registros", nil)
	w := httptest.NewRecorder()
	ListRegistros(api)(w, r)

	// falha remota degrada para lista vazia com status 200
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCalendarioRegistros(t *testing.T) {
	api := apiFalsa(t, []map[string]any{
		{"funcionario_id": 1, "nome": "Maria", "data": "2025-02-10", "hora_entrada": "08:00:00"},
	})

	r := httptest.NewRequest(http.MethodGet, "/api/registros/calendario?mes=2&ano=2025&unidade_id=1", nil)
	w := httptest.NewRecorder()
	CalendarioRegistros(api)(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var out []struct {
		Dia       string             `json:"dia"`
		Registros []registroResposta `json:"registros"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 28, "fevereiro de 2025 tem 28 dias, todos presentes")

	assert.Equal(t, "2025-02-01", out[0].Dia)
	assert.Empty(t, out[0].Registros)
	assert.Len(t, out[9].Registros, 1)
}

func TestCalendarioRegistrosSemMes(t *testing.T) {
	api := apiFalsa(t, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/registros/calendario", nil)
	w := httptest.NewRecorder()
	CalendarioRegistros(api)(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
