package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/prefeitura-itaguai/biometrico-saude/db"
	"github.com/prefeitura-itaguai/biometrico-saude/models"
)

var validate = validator.New()

type criarUsuarioInput struct {
	Nome     string               `json:"nome" validate:"required"`
	Senha    string               `json:"senha" validate:"required,min=6"`
	Username string               `json:"username" validate:"required,min=3"`
	Email    string               `json:"email" validate:"required,email"`
	Role     string               `json:"role" validate:"required,oneof=admin rh gestor funcionario"`
	Status   models.StatusUsuario `json:"status"`
}

// --- CREATE ---
func CreateUsuario(database *db.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in criarUsuarioInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if in.Status == "" {
			in.Status = models.StatusAtivo
		}

		if err := validate.Struct(in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		u := models.Usuario{
			Nome:     in.Nome,
			Username: in.Username,
			Email:    in.Email,
			Role:     in.Role,
			Status:   in.Status,
		}

		if !u.IsValidStatus(u.Status) {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "error hashing password", http.StatusInternalServerError)
			return
		}

		u.UserID = uuid.NewString()

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		query := `
			INSERT INTO usuarios (nome, senha, email, username, user_id, role, status)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			RETURNING id
		`

		err = database.Pool().QueryRow(
			ctx,
			query,
			u.Nome,
			string(hashed),
			u.Email,
			u.Username,
			u.UserID,
			u.Role,
			u.Status,
		).Scan(&u.ID)

		if err != nil {
			zap.S().Errorw("erro inserindo usuário", "erro", err)
			http.Error(w, "could not insert usuario", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, u)
	}
}

// --- LIST ALL ---
func ListUsuarios(database *db.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rows, err := database.Pool().Query(ctx, `
			SELECT id, user_id, nome, username, email, role, status
			FROM usuarios ORDER BY nome
		`)
		if err != nil {
			zap.S().Errorw("erro listando usuários", "erro", err)
			http.Error(w, "error fetching usuarios", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		usuarios := []models.Usuario{}
		for rows.Next() {
			var u models.Usuario
			if err := rows.Scan(&u.ID, &u.UserID, &u.Nome, &u.Username, &u.Email, &u.Role, &u.Status); err != nil {
				http.Error(w, "error reading rows", http.StatusInternalServerError)
				return
			}
			usuarios = append(usuarios, u)
		}

		writeJSON(w, http.StatusOK, usuarios)
	}
}

// --- GET BY ID ---
func GetUsuario(database *db.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var u models.Usuario
		query := `SELECT id, user_id, nome, username, email, role, status FROM usuarios WHERE id = $1`
		err = database.Pool().QueryRow(ctx, query, id).Scan(
			&u.ID, &u.UserID, &u.Nome, &u.Username, &u.Email, &u.Role, &u.Status,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "usuario not found", http.StatusNotFound)
			return
		} else if err != nil {
			http.Error(w, "database error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, u)
	}
}

// --- UPDATE (PATCH) ---
func UpdateUsuario(database *db.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var input map[string]any
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		fields := []string{}
		values := []any{}
		i := 1

		var u models.Usuario

		for key, value := range input {
			switch key {
			case "nome", "email", "role":
				fields = append(fields, fmt.Sprintf("%s = $%d", key, i))
				values = append(values, value)
				i++

			case "senha":
				s, ok := value.(string)
				if !ok || len(s) < 6 {
					http.Error(w, "invalid senha", http.StatusBadRequest)
					return
				}
				hashed, _ := bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
				fields = append(fields, fmt.Sprintf("senha = $%d", i))
				values = append(values, string(hashed))
				i++

			case "status":
				status := models.StatusUsuario(fmt.Sprint(value))
				if !u.IsValidStatus(status) {
					http.Error(w, "invalid status", http.StatusBadRequest)
					return
				}
				fields = append(fields, fmt.Sprintf("status = $%d", i))
				values = append(values, status)
				i++
			}
		}

		if len(fields) == 0 {
			http.Error(w, "no valid fields to update", http.StatusBadRequest)
			return
		}

		values = append(values, id)

		query := fmt.Sprintf(
			`UPDATE usuarios SET %s WHERE id = $%d`,
			strings.Join(fields, ", "),
			len(values),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		cmd, err := database.Pool().Exec(ctx, query, values...)
		if err != nil || cmd.RowsAffected() == 0 {
			http.Error(w, "usuario not found or not updated", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

// --- DELETE ---
func DeleteUsuario(database *db.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		cmd, err := database.Pool().Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
		if err != nil {
			http.Error(w, "error deleting usuario", http.StatusInternalServerError)
			return
		}

		if cmd.RowsAffected() == 0 {
			http.Error(w, "usuario not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
