package graphql

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain"
)

func postJSON(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_Query_Over_JSON(t *testing.T) {
	req := require.New(t)
	stack := newStack(t)
	handler := NewHandler(slog.Default(), stack.schema)

	recorder := postJSON(t, handler, `{"query":"{ messages { id } }"}`)
	req.Equal(http.StatusOK, recorder.Code)
	req.JSONEq(`{"data":{"messages":[]}}`, recorder.Body.String())
}

func TestHandler_Mutation_Over_JSON(t *testing.T) {
	req := require.New(t)
	stack := newStack(t)
	handler := NewHandler(slog.Default(), stack.schema)

	body, err := json.Marshal(queryParams{
		Query: `mutation($sender: String!, $content: String) {
			postMessage(sender: $sender, content: $content) { sender content } }`,
		Variables: map[string]interface{}{"sender": "Alice", "content": "hi"},
	})
	req.NoError(err)

	recorder := postJSON(t, handler, string(body))
	req.Equal(http.StatusOK, recorder.Code)
	req.JSONEq(`{"data":{"postMessage":{"sender":"Alice","content":"hi"}}}`,
		recorder.Body.String())
}

func TestHandler_Multipart_Upload(t *testing.T) {
	req := require.New(t)
	stack := newStack(t)
	handler := NewHandler(slog.Default(), stack.schema)

	// Given a multipart body following the operations/map/file convention
	var buffer bytes.Buffer
	form := multipart.NewWriter(&buffer)
	req.NoError(form.WriteField("operations", `{
		"query": "mutation($sender: String!, $file: Upload) { postMessage(sender: $sender, file: $file) { file { filename url } } }",
		"variables": { "sender": "Alice", "file": null }
	}`))
	req.NoError(form.WriteField("map", `{"0": ["variables.file"]}`))
	part, err := form.CreateFormFile("0", "a.txt")
	req.NoError(err)
	_, err = part.Write([]byte("multipart payload"))
	req.NoError(err)
	req.NoError(form.Close())

	request := httptest.NewRequest(http.MethodPost, "/graphql", &buffer)
	request.Header.Set("Content-Type", form.FormDataContentType())
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	// Then the mutation sees the file and returns its descriptor
	req.Equal(http.StatusOK, recorder.Code)
	req.JSONEq(`{"data":{"postMessage":{"file":{
		"filename":"a.txt",
		"url":"http://localhost:4000/uploads/a.txt"}}}}`,
		recorder.Body.String())
}

func TestHandler_Rejects_Non_POST(t *testing.T) {
	req := require.New(t)
	stack := newStack(t)
	handler := NewHandler(slog.Default(), stack.schema)

	request := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	req.Equal(http.StatusMethodNotAllowed, recorder.Code)
}

func TestHandler_Rejects_Malformed_Body(t *testing.T) {
	req := require.New(t)
	stack := newStack(t)
	handler := NewHandler(slog.Default(), stack.schema)

	recorder := postJSON(t, handler, "{not json")
	req.Equal(http.StatusBadRequest, recorder.Code)
}

func TestBindVariable_Walks_Nested_Paths(t *testing.T) {
	req := require.New(t)
	upload := domain.Upload{Filename: "a.txt"}

	variables := map[string]interface{}{
		"input": map[string]interface{}{"file": nil},
	}
	req.NoError(bindVariable(variables, "variables.input.file", upload))
	req.Equal(upload, variables["input"].(map[string]interface{})["file"])

	req.Error(bindVariable(variables, "file", upload))
	req.Error(bindVariable(variables, "variables.missing.file", upload))
}
