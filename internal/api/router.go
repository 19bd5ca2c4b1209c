package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/samandr77/microservices/reports/docs" //nolint:revive,nolintlint
)

func NewRouter(h *Handler, mw *Middleware, downloadPath string) http.Handler {
	router := chi.NewRouter()

	router.Use(mw.Log, mw.Recover, mw.Cors, mw.WithIP)

	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Get("/health", h.Health)
			r.Get("/swagger/*", httpSwagger.WrapHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth)

			r.Post("/invoices/report", h.PrintInvoicesReport)
			r.Post("/invoices/report/filter", h.PrintInvoicesReportByFilter)
		})
	})

	router.With(mw.Auth).Get(downloadPath+"/{id}", h.DownloadAttachment)

	return router
}
