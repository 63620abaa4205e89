package biometrico

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/prefeitura-itaguai/biometrico-saude/models"
	"github.com/prefeitura-itaguai/biometrico-saude/ponto"
	"github.com/prefeitura-itaguai/biometrico-saude/relatorio"
	"github.com/prefeitura-itaguai/biometrico-saude/slug"
)

var ErrNaoEncontrado = errors.New("recurso não encontrado")

const (
	chaveUnidades     = "unidades"
	chaveFuncionarios = "funcionarios:" // + unidade_id
)

// Client fala com a API remota do biométrico (/unid, /funci, /reg, /relat).
// Leituras de listas degradam para a cópia em cache e depois para lista
// vazia; nunca propagam pânico para o chamador HTTP. Escritas invalidam
// a chave da coleção correspondente.
type Client struct {
	base  string
	http  *http.Client
	cache *gocache.Cache
}

func NewClient(base string, ttl time.Duration) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		http:  &http.Client{Timeout: 15 * time.Second},
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Filtro são os parâmetros de consulta aceitos pelos endpoints de registro.
type Filtro struct {
	Mes           int
	Ano           int
	FuncionarioID int32
	UnidadeID     int32
}

func (f Filtro) query() url.Values {
	q := url.Values{}
	if f.Mes > 0 {
		q.Set("mes", strconv.Itoa(f.Mes))
	}
	if f.Ano > 0 {
		q.Set("ano", strconv.Itoa(f.Ano))
	}
	if f.FuncionarioID > 0 {
		q.Set("funcionario_id", strconv.FormatInt(int64(f.FuncionarioID), 10))
	}
	if f.UnidadeID > 0 {
		q.Set("unidade_id", strconv.FormatInt(int64(f.UnidadeID), 10))
	}
	return q
}

// --- Unidades ---

// ListarUnidades devolve as unidades da API remota. Em falha, serve a
// cópia em cache; sem cache, devolve lista vazia e o erro para log.
func (c *Client) ListarUnidades(ctx context.Context) ([]models.Unidade, error) {
	var lista []models.Unidade
	err := c.getJSON(ctx, "/unid/unidades", nil, &lista)
	if err != nil {
		if v, ok := c.cache.Get(chaveUnidades); ok {
			zap.S().Warnw("servindo unidades do cache", "erro", err)
			return v.([]models.Unidade), nil
		}
		return []models.Unidade{}, err
	}
	if lista == nil {
		lista = []models.Unidade{}
	}
	c.cache.SetDefault(chaveUnidades, lista)
	return lista, nil
}

func (c *Client) BuscarUnidade(ctx context.Context, id int32) (*models.Unidade, error) {
	var u models.Unidade
	if err := c.getJSON(ctx, fmt.Sprintf("/unid/unidades/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// BuscarUnidadePorSlug localiza a unidade pelo slug derivado do nome.
// A derivação é determinística, então basta comparar contra a lista.
func (c *Client) BuscarUnidadePorSlug(ctx context.Context, s string) (*models.Unidade, error) {
	lista, err := c.ListarUnidades(ctx)
	if err != nil {
		return nil, err
	}
	for i := range lista {
		if lista[i].Slug == s || slug.Slugify(lista[i].Nome) == s {
			return &lista[i], nil
		}
	}
	return nil, ErrNaoEncontrado
}

// CriarUnidade envia a unidade em multipart (a foto é arquivo). O slug é
// derivado do nome aqui, nunca informado pelo chamador.
func (c *Client) CriarUnidade(ctx context.Context, u models.Unidade, foto io.Reader, nomeFoto string) (*models.Unidade, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("nome", u.Nome)
	mw.WriteField("localizacao", u.Localizacao)
	mw.WriteField("slug", slug.Slugify(u.Nome))
	if foto != nil {
		fw, err := mw.CreateFormFile("foto", nomeFoto)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(fw, foto); err != nil {
			return nil, fmt.Errorf("lendo foto: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/unid/unidades", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var criada models.Unidade
	if err := c.do(req, &criada); err != nil {
		return nil, err
	}
	c.cache.Delete(chaveUnidades)
	return &criada, nil
}

func (c *Client) AtualizarUnidade(ctx context.Context, id int32, campos map[string]any) error {
	if nome, ok := campos["nome"].(string); ok {
		campos["slug"] = slug.Slugify(nome)
	}
	if err := c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/unid/unidades/%d", id), campos, nil); err != nil {
		return err
	}
	c.cache.Delete(chaveUnidades)
	return nil
}

func (c *Client) RemoverUnidade(ctx context.Context, id int32) error {
	if err := c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/unid/unidades/%d", id), nil, nil); err != nil {
		return err
	}
	c.cache.Delete(chaveUnidades)
	return nil
}

// --- Funcionários ---

func (c *Client) ListarFuncionarios(ctx context.Context, unidadeID int32) ([]models.Funcionario, error) {
	q := url.Values{}
	if unidadeID > 0 {
		q.Set("unidade_id", strconv.FormatInt(int64(unidadeID), 10))
	}
	chave := chaveFuncionarios + q.Get("unidade_id")

	var lista []models.Funcionario
	err := c.getJSON(ctx, "/funci/funcionarios", q, &lista)
	if err != nil {
		if v, ok := c.cache.Get(chave); ok {
			zap.S().Warnw("servindo funcionários do cache", "erro", err)
			return v.([]models.Funcionario), nil
		}
		return []models.Funcionario{}, err
	}
	if lista == nil {
		lista = []models.Funcionario{}
	}
	c.cache.SetDefault(chave, lista)
	return lista, nil
}

func (c *Client) BuscarFuncionario(ctx context.Context, id int32) (*models.Funcionario, error) {
	var f models.Funcionario
	if err := c.getJSON(ctx, fmt.Sprintf("/funci/funcionarios/%d", id), nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *Client) CriarFuncionario(ctx context.Context, f models.Funcionario) (*models.Funcionario, error) {
	var criado models.Funcionario
	if err := c.sendJSON(ctx, http.MethodPost, "/funci/funcionarios", f, &criado); err != nil {
		return nil, err
	}
	c.invalidarFuncionarios(f.UnidadeID)
	return &criado, nil
}

func (c *Client) AtualizarFuncionario(ctx context.Context, id int32, campos map[string]any) error {
	if err := c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/funci/funcionarios/%d", id), campos, nil); err != nil {
		return err
	}
	c.invalidarFuncionarios(0)
	return nil
}

func (c *Client) RemoverFuncionario(ctx context.Context, id int32) error {
	if err := c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/funci/funcionarios/%d", id), nil, nil); err != nil {
		return err
	}
	c.invalidarFuncionarios(0)
	return nil
}

// invalidarFuncionarios derruba as chaves de funcionários; sem o id da
// unidade (0), derruba todas.
func (c *Client) invalidarFuncionarios(unidadeID int32) {
	if unidadeID > 0 {
		c.cache.Delete(chaveFuncionarios + strconv.FormatInt(int64(unidadeID), 10))
		c.cache.Delete(chaveFuncionarios)
		return
	}
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, chaveFuncionarios) {
			c.cache.Delete(k)
		}
	}
}

// --- Registros de ponto ---

// ListarRegistros busca os registros crus do endpoint pontos-unidade.
// Falha devolve lista vazia, nunca nil com pânico adiante.
func (c *Client) ListarRegistros(ctx context.Context, f Filtro) ([]ponto.RegistroBruto, error) {
	var lista []ponto.RegistroBruto
	if err := c.getJSON(ctx, "/reg/pontos-unidade", f.query(), &lista); err != nil {
		return []ponto.RegistroBruto{}, err
	}
	if lista == nil {
		lista = []ponto.RegistroBruto{}
	}
	return lista, nil
}

// LevantamentoHoras é a segunda forma de leitura (campos de duração
// podem vir numéricos); o normalizador aceita as duas.
func (c *Client) LevantamentoHoras(ctx context.Context, f Filtro) ([]ponto.RegistroBruto, error) {
	var lista []ponto.RegistroBruto
	if err := c.getJSON(ctx, "/reg/levantamento-horas", f.query(), &lista); err != nil {
		return []ponto.RegistroBruto{}, err
	}
	if lista == nil {
		lista = []ponto.RegistroBruto{}
	}
	return lista, nil
}

func (c *Client) CriarRegistro(ctx context.Context, r models.RegistroPonto) (*models.RegistroPonto, error) {
	var criado models.RegistroPonto
	if err := c.sendJSON(ctx, http.MethodPost, "/reg/registros", r, &criado); err != nil {
		return nil, err
	}
	return &criado, nil
}

// --- Relatório mensal ---

func (c *Client) RelatorioMensal(ctx context.Context, funcionarioID int32, mes, ano int) ([]relatorio.RegistroDia, error) {
	q := Filtro{Mes: mes, Ano: ano, FuncionarioID: funcionarioID}.query()
	var dias []relatorio.RegistroDia
	if err := c.getJSON(ctx, "/relat/relatorio-mensal", q, &dias); err != nil {
		return nil, err
	}
	return dias, nil
}

// --- transporte ---

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, ErrNaoEncontrado)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: resposta inválida: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
