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
	"github.com/prefeitura-itaguai/biometrico-saude/models"
	"github.com/prefeitura-itaguai/biometrico-saude/relatorio"
)

func TestRelatorioMensal(t *testing.T) {
	entrada, saida := "08:00:00", "17:00:00"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/funci/funcionarios/3":
			json.NewEncoder(w).Encode(models.Funcionario{
				ID: 3, Nome: "Maria da Silva", Matricula: "12345",
				Cargo: "Enfermeira", UnidadeID: 1, TipoEscala: "12x36",
			})
		case "/relat/relatorio-mensal":
			assert.Equal(t, "3", r.URL.Query().Get("funcionario_id"))
			assert.Equal(t, "3", r.URL.Query().Get("mes"))
			assert.Equal(t, "2025", r.URL.Query().Get("ano"))
			json.NewEncoder(w).Encode([]relatorio.RegistroDia{{
				Data: "23/03/2025", HoraEntrada: &entrada, HoraSaida: &saida,
				TotalTrabalhado: "08:00:00",
			}})
		case "/unid/unidades/1":
			json.NewEncoder(w).Encode(models.Unidade{ID: 1, Nome: "UBS Centro"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	api := biometrico.NewClient(srv.URL, time.Minute)

	r := httptest.NewRequest(http.MethodGet, "/api/relatorios/mensal?funcionario_id=3&mes=3&ano=2025", nil)
	w := httptest.NewRecorder()
	RelatorioMensal(api)(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "frequencia-12345-03-2025.pdf")
	require.Greater(t, w.Body.Len(), 4)
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}

func TestRelatorioMensalFalhaNaoGeraParcial(t *testing.T) {
	api := biometrico.NewClient("http://127.0.0.1:1", time.Minute)

	r := httptest.NewRequest(http.MethodGet, "/api/relatorios/mensal?funcionario_id=3&mes=3&ano=2025", nil)
	w := httptest.NewRecorder()
	RelatorioMensal(api)(w, r)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "%PDF", "falha na origem não produz documento parcial")
}

func TestRelatorioMensalParametrosInvalidos(t *testing.T) {
	api := biometrico.NewClient("http://127.0.0.1:1", time.Minute)

	for _, q := range []string{
		"?mes=3&ano=2025",
		"?funcionario_id=3&mes=13&ano=2025",
		"?funcionario_id=3&mes=3",
	} {
		r := httptest.NewRequest(http.MethodGet, "/api/relatorios/mensal"+q, nil)
		w := httptest.NewRecorder()
		RelatorioMensal(api)(w, r)
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %s", q)
	}
}
