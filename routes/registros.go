package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prefeitura-itaguai/biometrico-saude/biometrico"
	"github.com/prefeitura-itaguai/biometrico-saude/db"
	"github.com/prefeitura-itaguai/biometrico-saude/models"
	"github.com/prefeitura-itaguai/biometrico-saude/ponto"
)

// registroResposta é o registro uniforme devolvido pelo portal: data
// sempre yyyy-MM-dd e status derivado.
type registroResposta struct {
	FuncionarioID   int32        `json:"funcionario_id"`
	FuncionarioNome string       `json:"funcionario_nome"`
	Data            string       `json:"data"`
	HoraEntrada     *string      `json:"hora_entrada"`
	HoraSaida       *string      `json:"hora_saida"`
	Status          ponto.Status `json:"status"`
}

func respostas(regs []ponto.Registro) []registroResposta {
	out := make([]registroResposta, len(regs))
	for i, r := range regs {
		out[i] = registroResposta{
			FuncionarioID:   r.FuncionarioID,
			FuncionarioNome: r.FuncionarioNome,
			Data:            r.Data.Format("2006-01-02"),
			HoraEntrada:     r.HoraEntrada,
			HoraSaida:       r.HoraSaida,
			Status:          r.Status,
		}
	}
	return out
}

func filtroDaQuery(r *http.Request) biometrico.Filtro {
	q := r.URL.Query()
	var f biometrico.Filtro
	if n, err := strconv.Atoi(q.Get("mes")); err == nil {
		f.Mes = n
	}
	if n, err := strconv.Atoi(q.Get("ano")); err == nil {
		f.Ano = n
	}
	if n, err := strconv.Atoi(q.Get("funcionario_id")); err == nil {
		f.FuncionarioID = int32(n)
	}
	if n, err := strconv.Atoi(q.Get("unidade_id")); err == nil {
		f.UnidadeID = int32(n)
	}
	return f
}

// --- LIST ---
func ListRegistros(api *biometrico.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brutos, err := api.ListarRegistros(r.Context(), filtroDaQuery(r))
		if err != nil {
			zap.S().Warnw("falha ao listar registros", "erro", err)
		}
		writeJSON(w, http.StatusOK, respostas(ponto.Normalizar(brutos)))
	}
}

// --- CALENDÁRIO MENSAL ---
// Devolve todos os dias do mês, com ou sem registro, para a visão mensal.
func CalendarioRegistros(api *biometrico.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := filtroDaQuery(r)
		if f.Mes < 1 || f.Mes > 12 || f.Ano == 0 {
			http.Error(w, "mes and ano are required", http.StatusBadRequest)
			return
		}

		brutos, err := api.ListarRegistros(r.Context(), f)
		if err != nil {
			zap.S().Warnw("falha ao montar calendário, seguindo sem registros", "erro", err)
		}

		dias := ponto.AgruparPorDia(f.Ano, time.Month(f.Mes), ponto.Normalizar(brutos))

		type diaResposta struct {
			Dia       string             `json:"dia"`
			Registros []registroResposta `json:"registros"`
		}
		out := make([]diaResposta, len(dias))
		for i, d := range dias {
			out[i] = diaResposta{
				Dia:       d.Dia.Format("2006-01-02"),
				Registros: respostas(d.Registros),
			}
		}

		writeJSON(w, http.StatusOK, out)
	}
}

type criarRegistroInput struct {
	FuncionarioID int32   `json:"funcionario_id" validate:"required,gt=0"`
	UnidadeID     int32   `json:"unidade_id" validate:"required,gt=0"`
	Data          string  `json:"data" validate:"required,datetime=2006-01-02"`
	HoraEntrada   *string `json:"hora_entrada"`
	HoraSaida     *string `json:"hora_saida"`
}

// --- CREATE ---
// A escrita vai primeiro para a API remota; se falhar, o registro é
// gravado localmente com id sintético e origem=local (nunca reconciliado).
func CreateRegistro(api *biometrico.Client, database *db.Database, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in criarRegistroInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if err := validate.Struct(in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		reg := models.RegistroPonto{
			FuncionarioID: in.FuncionarioID,
			UnidadeID:     in.UnidadeID,
			Data:          in.Data,
			HoraEntrada:   in.HoraEntrada,
			HoraSaida:     in.HoraSaida,
		}
		reg.Status = string(ponto.StatusDe(reg.HoraEntrada, reg.HoraSaida))

		criado, err := api.CriarRegistro(r.Context(), reg)
		if err != nil {
			zap.S().Warnw("escrita remota falhou, gravando registro local", "erro", err)

			local, err := salvarRegistroLocal(r.Context(), database, reg)
			if err != nil {
				zap.S().Errorw("erro gravando registro local", "erro", err)
				http.Error(w, "could not create registro", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusCreated, local)
			return
		}

		criado.Status = reg.Status
		hub.Broadcast(criado)
		writeJSON(w, http.StatusCreated, criado)
	}
}

// --- LIST LOCAL (contingência) ---
func ListRegistrosLocais(database *db.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rows, err := database.Pool().Query(ctx, `
			SELECT registro_id, funcionario_id, unidade_id, data, hora_entrada, hora_saida
			FROM registros_fallback
			ORDER BY data DESC
		`)
		if err != nil {
			zap.S().Errorw("erro listando registros locais", "erro", err)
			http.Error(w, "error fetching registros", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		registros := []models.RegistroPonto{}
		for rows.Next() {
			var reg models.RegistroPonto
			if err := rows.Scan(
				&reg.RegistroID, &reg.FuncionarioID, &reg.UnidadeID,
				&reg.Data, &reg.HoraEntrada, &reg.HoraSaida,
			); err != nil {
				http.Error(w, "error reading rows", http.StatusInternalServerError)
				return
			}
			reg.Origem = models.OrigemLocal
			reg.Status = string(ponto.StatusDe(reg.HoraEntrada, reg.HoraSaida))
			registros = append(registros, reg)
		}

		writeJSON(w, http.StatusOK, registros)
	}
}

func salvarRegistroLocal(ctx context.Context, database *db.Database, reg models.RegistroPonto) (models.RegistroPonto, error) {
	reg.RegistroID = uuid.NewString()
	reg.Origem = models.OrigemLocal

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO registros_fallback (registro_id, funcionario_id, unidade_id, data, hora_entrada, hora_saida)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	_, err := database.Pool().Exec(ctx, query,
		reg.RegistroID, reg.FuncionarioID, reg.UnidadeID,
		reg.Data, reg.HoraEntrada, reg.HoraSaida,
	)
	return reg, err
}
