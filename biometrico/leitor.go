package biometrico

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prefeitura-itaguai/biometrico-saude/models"
)

// timeout do leitor biométrico local; é a única chamada do sistema com
// prazo próprio e cancelamento
const timeoutLeitor = 10 * time.Second

type UsuarioLeitor struct {
	IDBiometrico string `json:"id_biometrico"`
	Nome         string `json:"nome,omitempty"`
}

// RespostaLeitor é o envelope devolvido pelo serviço do leitor.
type RespostaLeitor struct {
	Message       string                `json:"message"`
	RegistroPonto *models.RegistroPonto `json:"registro_ponto,omitempty"`
	User          *UsuarioLeitor        `json:"user,omitempty"`
}

type CadastroDigital struct {
	FuncionarioID int32  `json:"funcionario_id"`
	Nome          string `json:"nome"`
	CPF           string `json:"cpf"`
	Matricula     string `json:"matricula"`
}

// Leitor fala com o serviço do leitor biométrico em https://127.0.0.1:5000.
// Em ambiente dev, falhas (inclusive timeout) degradam para uma resposta
// simulada, para desenvolver sem o hardware na mesa.
type Leitor struct {
	url      string
	http     *http.Client
	ambiente string
}

func NewLeitor(url, ambiente string) *Leitor {
	// o serviço local usa certificado autoassinado
	tr := &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}}
	return &Leitor{
		url:      strings.TrimRight(url, "/"),
		http:     &http.Client{Transport: tr},
		ambiente: ambiente,
	}
}

// RegistrarPonto pede ao leitor que identifique a digital e registre o
// ponto; o corpo vai vazio, o próprio dispositivo identifica quem é.
func (l *Leitor) RegistrarPonto(ctx context.Context) (*RespostaLeitor, error) {
	resp, err := l.post(ctx, "/register_ponto", nil)
	if err != nil {
		if l.ambiente == "dev" {
			zap.S().Warnw("leitor indisponível, usando resposta simulada", "erro", err)
			return pontoSimulado(), nil
		}
		return nil, err
	}
	return resp, nil
}

// CadastrarDigital inicia o cadastro de digital de um funcionário; o
// id_biometrico é atribuído pelo serviço de forma assíncrona.
func (l *Leitor) CadastrarDigital(ctx context.Context, c CadastroDigital) (*RespostaLeitor, error) {
	resp, err := l.post(ctx, "/register", c)
	if err != nil {
		if l.ambiente == "dev" {
			zap.S().Warnw("leitor indisponível, usando cadastro simulado", "erro", err)
			return &RespostaLeitor{
				Message: "Cadastro simulado (ambiente dev)",
				User:    &UsuarioLeitor{IDBiometrico: uuid.NewString(), Nome: c.Nome},
			}, nil
		}
		return nil, err
	}
	return resp, nil
}

func (l *Leitor) post(ctx context.Context, path string, body any) (*RespostaLeitor, error) {
	ctx, cancel := context.WithTimeout(ctx, timeoutLeitor)
	defer cancel()

	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.url+path, rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leitor biométrico: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, fmt.Errorf("leitor biométrico: status %d", httpResp.StatusCode)
	}

	var resp RespostaLeitor
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("leitor biométrico: resposta inválida: %w", err)
	}
	return &resp, nil
}

func pontoSimulado() *RespostaLeitor {
	agora := time.Now()
	entrada := agora.Format("15:04:05")
	return &RespostaLeitor{
		Message: "Ponto registrado (simulado, ambiente dev)",
		RegistroPonto: &models.RegistroPonto{
			FuncionarioID: 1,
			Data:          agora.Format("2006-01-02"),
			HoraEntrada:   &entrada,
		},
	}
}
