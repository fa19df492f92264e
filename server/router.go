// Package server wires the HTTP surface: the GraphQL endpoint (with
// WebSocket upgrade for subscriptions), static serving of uploaded
// files, the liveness probe and the two embedded chat views.
package server

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-transport-ws/graphqlws"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/graphql"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/web"
)

type Dependencies struct {
	Log       *slog.Logger
	Schema    *graphqlgo.Schema
	UploadDir string
}

// NewRouter builds the full route table.
// /graphql serves plain POSTs and websocket upgrades on the same path;
// graphqlws sniffs the upgrade header and falls through to the HTTP
// handler otherwise.
func NewRouter(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	graphqlHandler := graphqlws.NewHandlerFunc(deps.Schema,
		graphql.NewHandler(deps.Log, deps.Schema))
	r.Handle("/graphql", graphqlHandler)

	r.Get("/uploads/{filename}", func(w http.ResponseWriter, req *http.Request) {
		filename := chi.URLParam(req, "filename")
		http.ServeFile(w, req, filepath.Join(deps.UploadDir, filename))
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("File sharing chat server is running"))
	})

	r.Get("/sender", web.PageHandler(web.SenderPage))
	r.Get("/receiver", web.PageHandler(web.ReceiverPage))

	return r
}
