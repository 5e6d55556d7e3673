// Command ats_stub is a local stand-in for the resume parsing and scoring
// service. Scores are derived from the upload so runs are repeatable.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"hash/fnv"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/adityarajsrv/CareerQuill/pkg/logger"
)

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	flag.Parse()

	log := logger.New("info", "text")
	mux := http.NewServeMux()
	mux.HandleFunc("/api/ats/parse", handleParse)
	mux.HandleFunc("/api/ats/score", handleScore)

	log.Info("ats stub listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Error("ats stub failed", "error", err)
	}
}

func handleParse(w http.ResponseWriter, r *http.Request) {
	name, data, ok := readFile(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"file_name": name,
		"size":      len(data),
		"sections":  detectSections(data),
	})
}

func handleScore(w http.ResponseWriter, r *http.Request) {
	jobTitle, level := r.URL.Query().Get("job_title"), r.URL.Query().Get("experience_level")
	if jobTitle == "" || level == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "job_title and experience_level are required")
		return
	}
	_, data, ok := readFile(w, r)
	if !ok {
		return
	}

	h := fnv.New32a()
	h.Write(data)
	h.Write([]byte(jobTitle + level))
	base := float64(h.Sum32()%40) + 40

	var suggestions []string
	lower := bytes.ToLower(data)
	for _, word := range strings.Fields(strings.ToLower(jobTitle)) {
		if !bytes.Contains(lower, []byte(word)) {
			suggestions = append(suggestions, "Mention \""+word+"\" where it reflects your experience")
		}
	}
	if len(detectSections(data)) < 3 {
		suggestions = append(suggestions, "Use standard section headings such as Experience, Education and Skills")
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ats_score":               base,
		"best_score":              base + 10,
		"worst_score":             base - 10,
		"improvement_suggestions": suggestions,
		"job_title":               jobTitle,
		"experience_level":        level,
	})
}

func readFile(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return "", nil, false
	}
	f, fh, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "file is required")
		return "", nil, false
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(fh.Filename)) {
	case ".pdf", ".docx":
	default:
		writeDetail(w, http.StatusBadRequest, "Only PDF and DOCX files are allowed")
		return "", nil, false
	}
	data, err := io.ReadAll(f)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return "", nil, false
	}
	return fh.Filename, data, true
}

func detectSections(data []byte) []string {
	lower := bytes.ToLower(data)
	found := []string{}
	for _, s := range []string{"summary", "education", "experience", "projects", "skills", "certifications"} {
		if bytes.Contains(lower, []byte(s)) {
			found = append(found, s)
		}
	}
	return found
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("ats stub: encode response", "error", err)
	}
}
