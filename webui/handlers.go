package webui

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"thumbforge/common"
	"thumbforge/thumbnail"
)

// allowedUploadExtensions guards what lands in the upload directory.
var allowedUploadExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".svg":  true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

type uploadResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Files   uploadedFiles `json:"files"`
}

type uploadedFiles struct {
	Background string   `json:"background,omitempty"`
	Icons      []string `json:"icons"`
}

type generateRequest struct {
	Title          string   `json:"title"`
	BackgroundFile string   `json:"background_file"`
	IconFiles      []string `json:"icon_files"`
	IconQueries    []string `json:"icon_queries"`
	Format         string   `json:"format"`
	TextColor      string   `json:"text_color"` // optional #rrggbb(aa)
}

type generateResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ResultID    string `json:"result_id,omitempty"`
	Preview     string `json:"preview,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	tmpl := template.Must(template.New("index").Parse(indexTemplate))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	tmpl.Execute(w, map[string]interface{}{
		"Formats": common.KnownFormats(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "thumbforge web UI running",
	})
}

// handleUpload stores the background image and any icon files under
// unique names and echoes those names back.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.cfg.Server.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		uploadFailures.Inc()
		writeJSON(w, http.StatusBadRequest, uploadResponse{Message: fmt.Sprintf("invalid upload: %v", err), Files: uploadedFiles{Icons: []string{}}})
		return
	}
	defer r.MultipartForm.RemoveAll()

	resp := uploadResponse{Files: uploadedFiles{Icons: []string{}}}

	if files := r.MultipartForm.File["background_image"]; len(files) > 0 {
		name, err := s.saveUpload(files[0])
		if err != nil {
			uploadFailures.Inc()
			writeJSON(w, http.StatusBadRequest, uploadResponse{Message: err.Error(), Files: uploadedFiles{Icons: []string{}}})
			return
		}
		resp.Files.Background = name
		s.log.Infof("Background image stored: %s", name)
	}

	for key, files := range r.MultipartForm.File {
		if !strings.HasPrefix(key, "icon_") {
			continue
		}
		for _, header := range files {
			name, err := s.saveUpload(header)
			if err != nil {
				s.log.Warnf("Icon upload %s rejected: %v", header.Filename, err)
				continue
			}
			resp.Files.Icons = append(resp.Files.Icons, name)
			s.log.Infof("Icon stored: %s", name)
		}
	}

	resp.Success = true
	resp.Message = fmt.Sprintf("uploaded background: %v, icons: %d",
		resp.Files.Background != "", len(resp.Files.Icons))
	writeJSON(w, http.StatusOK, resp)
}

// saveUpload writes one multipart file into the upload dir under a
// unique, sanitized name.
func (s *Server) saveUpload(header *multipart.FileHeader) (string, error) {
	base := sanitizeFilename(header.Filename)
	if !allowedUploadExtensions[strings.ToLower(filepath.Ext(base))] {
		return "", fmt.Errorf("file type of %q not allowed", header.Filename)
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%s_%s", uuidHex(), base)
	dst, err := os.Create(filepath.Join(s.cfg.Server.UploadDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return name, nil
}

// handleGenerate runs the pipeline for an upload + title and records
// the result for download.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, generateResponse{Message: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		writeJSON(w, http.StatusBadRequest, generateResponse{Message: "title is required"})
		return
	}
	if req.BackgroundFile == "" {
		writeJSON(w, http.StatusBadRequest, generateResponse{Message: "background image is required"})
		return
	}

	// Uploaded names are server-generated; Base guards against crafted
	// traversal paths.
	backgroundPath := filepath.Join(s.cfg.Server.UploadDir, filepath.Base(req.BackgroundFile))
	if _, err := os.Stat(backgroundPath); err != nil {
		writeJSON(w, http.StatusNotFound, generateResponse{Message: "background image not found"})
		return
	}

	var iconPaths []string
	for _, name := range req.IconFiles {
		p := filepath.Join(s.cfg.Server.UploadDir, filepath.Base(name))
		if _, err := os.Stat(p); err != nil {
			s.log.Warnf("Icon file not found, skipping: %s", name)
			continue
		}
		iconPaths = append(iconPaths, p)
	}

	format := strings.ToLower(req.Format)
	if format == "" {
		format = "png"
	}
	if !common.IsKnownFormat(format) {
		writeJSON(w, http.StatusBadRequest, generateResponse{Message: fmt.Sprintf("unknown format %q", req.Format)})
		return
	}

	treq := thumbnail.Request{
		Title:          req.Title,
		BackgroundPath: backgroundPath,
		IconPaths:      iconPaths,
		IconQueries:    req.IconQueries,
	}
	if req.TextColor != "" {
		col, err := common.ParseHexColor(req.TextColor)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, generateResponse{Message: err.Error()})
			return
		}
		treq.TextColor = &col
	}

	id := uuidHex()
	file := common.NormalizeExtension("thumbnail_"+id, format)
	outPath := filepath.Join(s.cfg.Server.ResultsDir, file)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	if err := s.pipeline.Generate(ctx, treq, outPath); err != nil {
		generateFailures.Inc()
		s.log.Errorf("Generation failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, generateResponse{Message: fmt.Sprintf("generation failed: %v", err)})
		return
	}
	generateSeconds.Observe(time.Since(start).Seconds())
	generatedTotal.WithLabelValues(format).Inc()

	s.mu.Lock()
	s.results[id] = &Result{ID: id, Title: req.Title, File: file, Format: format, Created: time.Now()}
	s.mu.Unlock()
	if err := s.saveResults(); err != nil {
		s.log.Warnf("Failed to save results index: %v", err)
	}

	resp := generateResponse{
		Success:     true,
		Message:     "thumbnail generated",
		ResultID:    id,
		DownloadURL: "/download/" + id,
	}
	if format == "png" {
		if data, err := os.ReadFile(outPath); err == nil {
			resp.Preview = "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
		}
	}

	s.log.Infof("Thumbnail generated: %s (%s, %s)", req.Title, format, file)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.RLock()
	result, exists := s.results[id]
	s.mu.RUnlock()

	if !exists {
		http.Error(w, "thumbnail not found", http.StatusNotFound)
		return
	}

	path := filepath.Join(s.cfg.Server.ResultsDir, filepath.Base(result.File))
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "thumbnail file missing", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.File))
	http.ServeFile(w, r, path)
}

// sanitizeFilename keeps a conservative character set, mirroring
// werkzeug's secure_filename.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return "file"
	}
	return base
}

func uuidHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
