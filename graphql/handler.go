package graphql

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	graphqlgo "github.com/graph-gophers/graphql-go"
)

// maxUploadMemory bounds how much of a multipart body is buffered in
// RAM before spilling to temp files.
const maxUploadMemory = 32 << 20 // 32 MB

type queryParams struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves queries and mutations on POST /graphql.
// Plain requests carry JSON bodies; uploads arrive as multipart form
// data following the GraphQL multipart request convention
// (operations + map + file parts).
type Handler struct {
	log    *slog.Logger
	schema *graphqlgo.Schema
}

func NewHandler(log *slog.Logger, schema *graphqlgo.Schema) *Handler {
	return &Handler{log: log, schema: schema}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "only POST is supported", http.StatusMethodNotAllowed)
		return
	}

	var params queryParams
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		params, err = parseMultipart(r)
	} else {
		err = json.NewDecoder(r.Body).Decode(&params)
	}
	if err != nil {
		h.log.Warn("Rejecting malformed request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := h.schema.Exec(r.Context(), params.Query, params.OperationName, params.Variables)
	body, err := json.Marshal(response)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// parseMultipart rewrites a multipart upload request into plain query
// params whose variables carry the file streams.
func parseMultipart(r *http.Request) (queryParams, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return queryParams{}, fmt.Errorf("parsing multipart form: %w", err)
	}

	var params queryParams
	if err := json.Unmarshal([]byte(r.FormValue("operations")), &params); err != nil {
		return queryParams{}, fmt.Errorf("parsing operations field: %w", err)
	}

	var fileMap map[string][]string
	if err := json.Unmarshal([]byte(r.FormValue("map")), &fileMap); err != nil {
		return queryParams{}, fmt.Errorf("parsing map field: %w", err)
	}

	for key, paths := range fileMap {
		files, ok := r.MultipartForm.File[key]
		if !ok || len(files) == 0 {
			return queryParams{}, fmt.Errorf("map entry %q has no file part", key)
		}
		upload, err := openUpload(files[0])
		if err != nil {
			return queryParams{}, err
		}
		for _, path := range paths {
			if err := bindVariable(params.Variables, path, upload); err != nil {
				return queryParams{}, err
			}
		}
	}
	return params, nil
}

func openUpload(header *multipart.FileHeader) (interface{}, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening file part %q: %w", header.Filename, err)
	}
	encoding := header.Header.Get("Content-Transfer-Encoding")
	if encoding == "" {
		encoding = "7bit"
	}
	return newUploadValue(header.Filename, header.Header.Get("Content-Type"), encoding, file), nil
}

// bindVariable walks a dotted path like "variables.file" and places the
// upload at its destination.
func bindVariable(variables map[string]interface{}, path string, value interface{}) error {
	segments := strings.Split(path, ".")
	if len(segments) < 2 || segments[0] != "variables" {
		return fmt.Errorf("unsupported upload path %q", path)
	}

	current := variables
	for _, segment := range segments[1 : len(segments)-1] {
		next, ok := current[segment].(map[string]interface{})
		if !ok {
			return fmt.Errorf("upload path %q does not match variables", path)
		}
		current = next
	}
	if current == nil {
		return fmt.Errorf("upload path %q does not match variables", path)
	}
	current[segments[len(segments)-1]] = value
	return nil
}
