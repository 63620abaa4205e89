package biometrico

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrarPontoLeitor(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/register_ponto", r.URL.Path)
		json.NewEncoder(w).Encode(RespostaLeitor{Message: "Ponto registrado"})
	}))
	defer srv.Close()

	l := NewLeitor(srv.URL, "prod")
	resp, err := l.RegistrarPonto(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ponto registrado", resp.Message)
}

func TestRegistrarPontoLeitorForaDoArEmProd(t *testing.T) {
	l := NewLeitor("https://127.0.0.1:1", "prod")
	_, err := l.RegistrarPonto(context.Background())
	assert.Error(t, err)
}

func TestRegistrarPontoSimuladoEmDev(t *testing.T) {
	// sem leitor na mesa, o ambiente dev devolve a resposta simulada
	l := NewLeitor("https://127.0.0.1:1", "dev")
	resp, err := l.RegistrarPonto(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.RegistroPonto)
	assert.NotNil(t, resp.RegistroPonto.HoraEntrada)
}

func TestCadastrarDigitalSimuladoEmDev(t *testing.T) {
	l := NewLeitor("https://127.0.0.1:1", "dev")
	resp, err := l.CadastrarDigital(context.Background(), CadastroDigital{
		FuncionarioID: 3, Nome: "Maria", CPF: "12345678901", Matricula: "555",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.NotEmpty(t, resp.User.IDBiometrico)
	assert.Equal(t, "Maria", resp.User.Nome)
}
