package biometrico

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefeitura-itaguai/biometrico-saude/models"
)

func servidorUnidades(t *testing.T, falhar *atomic.Bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if falhar != nil && falhar.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		switch r.URL.Path {
		case "/unid/unidades":
			json.NewEncoder(w).Encode([]models.Unidade{
				{ID: 1, Nome: "UBS Centro", Slug: "ubs-centro"},
				{ID: 2, Nome: "Posto São José"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestListarUnidades(t *testing.T) {
	srv := servidorUnidades(t, nil)
	defer srv.Close()

	c := NewClient(srv.URL, time.Minute)
	lista, err := c.ListarUnidades(context.Background())
	require.NoError(t, err)
	require.Len(t, lista, 2)
	assert.Equal(t, "UBS Centro", lista[0].Nome)
}

func TestListarUnidadesFalhaViraListaVazia(t *testing.T) {
	// endereço que não responde: tem que voltar lista vazia, nunca nil
	c := NewClient("http://127.0.0.1:1", time.Minute)
	lista, err := c.ListarUnidades(context.Background())
	assert.Error(t, err)
	require.NotNil(t, lista)
	assert.Empty(t, lista)
}

func TestListarUnidadesServeCacheEmFalha(t *testing.T) {
	var falhar atomic.Bool
	srv := servidorUnidades(t, &falhar)
	defer srv.Close()

	c := NewClient(srv.URL, time.Minute)

	lista, err := c.ListarUnidades(context.Background())
	require.NoError(t, err)
	require.Len(t, lista, 2)

	// remoto fora do ar: a cópia em cache segura a leitura
	falhar.Store(true)
	lista, err = c.ListarUnidades(context.Background())
	require.NoError(t, err)
	assert.Len(t, lista, 2)
}

func TestBuscarUnidadePorSlug(t *testing.T) {
	srv := servidorUnidades(t, nil)
	defer srv.Close()

	c := NewClient(srv.URL, time.Minute)

	u, err := c.BuscarUnidadePorSlug(context.Background(), "ubs-centro")
	require.NoError(t, err)
	assert.Equal(t, int32(1), u.ID)

	// sem slug gravado, a busca deriva do nome
	u, err = c.BuscarUnidadePorSlug(context.Background(), "posto-sao-jose")
	require.NoError(t, err)
	assert.Equal(t, int32(2), u.ID)

	_, err = c.BuscarUnidadePorSlug(context.Background(), "nao-existe")
	assert.ErrorIs(t, err, ErrNaoEncontrado)
}

func TestCriarUnidadeInvalidaCache(t *testing.T) {
	chamadas := int32(0)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			atomic.AddInt32(&chamadas, 1)
			json.NewEncoder(w).Encode([]models.Unidade{{ID: 1, Nome: "UBS Centro"}})
		case r.Method == http.MethodPost:
			require.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "posto-novo", r.FormValue("slug"))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.Unidade{ID: 9, Nome: "Posto Novo", Slug: "posto-novo"})
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Minute)

	_, err := c.ListarUnidades(context.Background())
	require.NoError(t, err)
	_, err = c.ListarUnidades(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&chamadas), "segunda leitura sai do cache")

	criada, err := c.CriarUnidade(context.Background(), models.Unidade{Nome: "Posto Novo"}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, int32(9), criada.ID)

	_, err = c.ListarUnidades(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&chamadas), "escrita invalida a chave da coleção")
}

func TestCriarRegistro(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/reg/registros", r.URL.Path)

		var reg models.RegistroPonto
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reg))
		reg.ID = 77
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(reg)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Minute)
	entrada := "08:00:00"
	criado, err := c.CriarRegistro(context.Background(), models.RegistroPonto{
		FuncionarioID: 3, UnidadeID: 1, Data: "2025-03-23", HoraEntrada: &entrada,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(77), criado.ID)
	assert.Equal(t, "2025-03-23", criado.Data)
}

func TestListarRegistrosFalhaViraListaVazia(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Minute)
	lista, err := c.ListarRegistros(context.Background(), Filtro{Mes: 3, Ano: 2025})
	assert.Error(t, err)
	require.NotNil(t, lista)
	assert.Empty(t, lista)
}

func TestFiltroQuery(t *testing.T) {
	q := Filtro{Mes: 3, Ano: 2025, FuncionarioID: 7, UnidadeID: 2}.query()
	assert.Equal(t, "3", q.Get("mes"))
	assert.Equal(t, "2025", q.Get("ano"))
	assert.Equal(t, "7", q.Get("funcionario_id"))
	assert.Equal(t, "2", q.Get("unidade_id"))

	vazio := Filtro{}.query()
	assert.Empty(t, vazio)
}
