package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/prefeitura-itaguai/biometrico-saude/auth"
	"github.com/prefeitura-itaguai/biometrico-saude/db"
	"github.com/prefeitura-itaguai/biometrico-saude/models"
)

type LoginResponse struct {
	Status      string            `json:"status"`
	Token       string            `json:"token,omitempty"`
	Perfil      *models.Usuario   `json:"perfil,omitempty"`
	Capacidades []auth.Capacidade `json:"capacidades,omitempty"`
}

// geraToken cria um JWT HS256 com expiração de 24h
func geraToken(secret, userID, username, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Login autentica contra a tabela local de usuários do portal e devolve
// token, perfil e o conjunto de capacidades do papel.
func Login(database *db.Database, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.Usuario
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&u); err != nil {
			var syntaxErr *json.SyntaxError
			var unmarshalTypeErr *json.UnmarshalTypeError

			switch {
			case errors.Is(err, io.EOF):
				http.Error(w, "Empty body", http.StatusBadRequest)
			case errors.As(err, &syntaxErr):
				http.Error(w, "Malformed JSON", http.StatusBadRequest)
			case errors.As(err, &unmarshalTypeErr):
				http.Error(w, "Wrong type for a field", http.StatusBadRequest)
			default:
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
			}
			return
		}

		if u.Username == "" || u.Senha == "" {
			http.Error(w, "username and senha are required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var (
			hashedPassword string
			perfil         models.Usuario
		)
		query := `SELECT id, user_id, nome, username, email, role, status, senha
			FROM usuarios WHERE username = $1 AND status = 'ativo' LIMIT 1`
		err := database.Pool().QueryRow(ctx, query, u.Username).Scan(
			&perfil.ID, &perfil.UserID, &perfil.Nome, &perfil.Username,
			&perfil.Email, &perfil.Role, &perfil.Status, &hashedPassword,
		)

		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "invalid username or password", http.StatusUnauthorized)
			return
		} else if err != nil {
			zap.S().Errorw("erro de banco no login", "erro", err)
			http.Error(w, "database error", http.StatusInternalServerError)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(u.Senha)); err != nil {
			http.Error(w, "invalid username or password", http.StatusUnauthorized)
			return
		}

		token, err := geraToken(secret, perfil.UserID, perfil.Username, perfil.Role)
		if err != nil {
			zap.S().Errorw("erro gerando token", "erro", err)
			http.Error(w, "could not generate token", http.StatusInternalServerError)
			return
		}

		perfil.Senha = ""
		writeJSON(w, http.StatusOK, LoginResponse{
			Status:      "Logged",
			Token:       token,
			Perfil:      &perfil,
			Capacidades: auth.Capacidades(perfil.Role),
		})

		zap.S().Infow("usuário logado", "username", perfil.Username, "user_id", perfil.UserID)
	}
}
