package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5/request"

	"github.com/samandr77/microservices/reports/internal/entity"
	"github.com/samandr77/microservices/reports/pkg/logger"
)

type Middleware struct {
	authServiceURL string
	httpClient     *http.Client
}

func NewMiddleware(authServiceURL string, httpClient *http.Client) *Middleware {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Middleware{
		authServiceURL: authServiceURL,
		httpClient:     httpClient,
	}
}

func (m *Middleware) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.SetRequestID(r.Context(), uuid.Must(uuid.NewV4()).String())

		headers := ""

		for k, v := range r.Header {
			if k == "Authorization" {
				continue
			}

			headers += fmt.Sprintf("%s: %s,\n", k, v)
		}

		slog.InfoContext(ctx, "incoming request", "method", r.Method, "url", r.URL.String(), "headers", headers, "user_ip", r.RemoteAddr)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func(ctx context.Context) {
			rec := recover()
			if rec != nil {
				slog.ErrorContext(ctx, "panic", "error", rec, "stack", string(debug.Stack()))
				SendErr(ctx, w, http.StatusInternalServerError, fmt.Errorf("panic: %v", rec), errInternalText)
			}
		}(r.Context())
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Origin, Accept, User-Agent, Cache-Control")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if r.Method == http.MethodOptions {
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) WithIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), entity.CtxKeyIP{}, r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			ctx  = r.Context()
			user entity.User
		)

		accessToken, err := request.BearerExtractor{}.ExtractToken(r)
		if err != nil {
			SendErr(ctx, w, http.StatusUnauthorized, err, "No hay token en el encabezado")
			return
		}

		jsonData, err := json.Marshal(map[string]string{
			"accessToken": accessToken,
		})
		if err != nil {
			SendErr(ctx, w, http.StatusInternalServerError, err, errInternalText)
			return
		}

		req, err := http.NewRequestWithContext(ctx,
			http.MethodPost, m.authServiceURL+"/api/validate", bytes.NewReader(jsonData))
		if err != nil {
			SendErr(ctx, w, http.StatusInternalServerError, err, errInternalText)
			return
		}

		req.Header.Set("Content-Type", "application/json")

		resp, err := m.httpClient.Do(req)
		if err != nil {
			SendErr(ctx, w, http.StatusInternalServerError, err, errInternalText)
			return
		}

		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			SendErr(ctx, w, http.StatusUnauthorized, fmt.Errorf("unexpected status code %d", resp.StatusCode), "Token inválido")
			return
		}

		err = json.NewDecoder(resp.Body).Decode(&user)
		if err != nil {
			SendErr(ctx, w, http.StatusInternalServerError, err, errInternalText)
			return
		}

		if user.IsBlocked {
			SendErr(ctx, w, http.StatusForbidden, errors.Join(entity.ErrForbidden, errors.New("user is blocked")), "Usuario bloqueado")
			return
		}

		ctx = logger.SetUserID(ctx, user.ID.String())
		ctx = entity.SetUserToContext(ctx, user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
