// Package web embeds the two chat views. Sender and receiver are the
// same page rendered with and without the posting form; both poll the
// message list on a fixed interval and hold a live subscription,
// merging the two sources by message id.
package web

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed chat.html
var templatesFS embed.FS

var chatTemplate = template.Must(template.ParseFS(templatesFS, "chat.html"))

type Page struct {
	Title          string
	CanPost        bool
	PollIntervalMs int
}

var (
	SenderPage   = Page{Title: "Sender", CanPost: true, PollIntervalMs: 3000}
	ReceiverPage = Page{Title: "Receiver", CanPost: false, PollIntervalMs: 3000}
)

func PageHandler(page Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = chatTemplate.Execute(w, page)
	}
}
