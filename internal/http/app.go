package http

import (
	"context"
	"net/http"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const ROOT_TEXT = "TDC Bot is running!"

type pingResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// NewHandler serves the health endpoints used by the hosting platform.
func NewHandler(log logging.Logger, startedAt time.Time, now func() time.Time) http.Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
		rw.WriteHeader(http.StatusOK)
		rw.Write([]byte(ROOT_TEXT))
	})
	router.Get("/ping", func(rw http.ResponseWriter, r *http.Request) {
		current := now()
		render(r.Context(), log, rw, pingResponse{
			Status:    "alive",
			Uptime:    reminder.FormatDuration(current.Sub(startedAt).Truncate(time.Second)),
			Timestamp: current.UTC().Format(time.RFC3339),
		})
	})
	return router
}

func render(ctx context.Context, log logging.Logger, rw http.ResponseWriter, res interface{}) {
	content, err := json.Marshal(res)
	if err != nil {
		logging.Error(ctx, log, err)
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusOK)
	rw.Write(content)
}
