package handlers

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dortega/velocilector/internal/importer"
	"github.com/dortega/velocilector/internal/models"
	"github.com/dortega/velocilector/internal/repository"
	"github.com/dortega/velocilector/internal/security"
	"github.com/dortega/velocilector/internal/service"
	"github.com/dortega/velocilector/internal/validation"
)

// AdminHandler handles content management and database maintenance
type AdminHandler struct {
	templates     *template.Template
	wordRepo      *repository.WordRepository
	textRepo      *repository.TextRepository
	importer      *importer.Importer
	backupService *service.BackupService
	csrf          *security.CSRFGenerator
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(templates *template.Template, wordRepo *repository.WordRepository, textRepo *repository.TextRepository, imp *importer.Importer, backupService *service.BackupService, csrf *security.CSRFGenerator) *AdminHandler {
	return &AdminHandler{
		templates:     templates,
		wordRepo:      wordRepo,
		textRepo:      textRepo,
		importer:      imp,
		backupService: backupService,
		csrf:          csrf,
	}
}

func (h *AdminHandler) getCSRFToken(r *http.Request) string {
	sessionID := GetSessionIDFromContext(r.Context())
	token, err := h.csrf.GenerateToken(sessionID)
	if err != nil {
		log.Printf("Error generating CSRF token: %v", err)
		return ""
	}
	return token
}

// ShowAdminDashboard shows the content management page
func (h *AdminHandler) ShowAdminDashboard(w http.ResponseWriter, r *http.Request) {
	h.renderDashboard(w, r, "", "")
}

func (h *AdminHandler) renderDashboard(w http.ResponseWriter, r *http.Request, errMsg, successMsg string) {
	user := GetUserFromContext(r.Context())

	language := r.URL.Query().Get("language")
	if language == "" {
		language = "es"
	}
	level := 1
	if levelParam := r.URL.Query().Get("level"); levelParam != "" {
		if parsed, err := strconv.Atoi(levelParam); err == nil {
			level = parsed
		}
	}

	words, err := h.wordRepo.GetWords(language, level, 100)
	if err != nil {
		log.Printf("Error listing words: %v", err)
	}
	texts, err := h.textRepo.GetTextsByLanguageLevel(language, level)
	if err != nil {
		log.Printf("Error listing texts: %v", err)
	}
	wordCount, err := h.wordRepo.CountWords(language, level)
	if err != nil {
		log.Printf("Error counting words: %v", err)
	}

	data := AdminViewData{
		Title:     "Administración - Velocilector",
		User:      user,
		Words:     words,
		Texts:     texts,
		WordCount: wordCount,
		CSRFToken: h.getCSRFToken(r),
		Error:     errMsg,
		Success:   successMsg,
	}

	if err := h.templates.ExecuteTemplate(w, "admin.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error rendering admin template", err)
	}
}

// CreateWord adds one word to the catalogue
func (h *AdminHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	language := r.FormValue("language")
	text := r.FormValue("text")
	level, err := strconv.Atoi(r.FormValue("level"))
	if err != nil {
		h.renderDashboard(w, r, "El nivel debe ser un número", "")
		return
	}
	if err := validation.ValidateLanguage(language); err != nil {
		h.renderDashboard(w, r, err.Error(), "")
		return
	}
	if err := validation.ValidateReadingLevel(level); err != nil {
		h.renderDashboard(w, r, err.Error(), "")
		return
	}
	if text == "" {
		h.renderDashboard(w, r, "La palabra no puede estar vacía", "")
		return
	}

	if _, err := h.wordRepo.CreateWord(language, level, text); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error creating word", err)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// DeleteWord removes one word from the catalogue
func (h *AdminHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	wordID, err := parseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.wordRepo.DeleteWord(wordID); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error deleting word", err)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// CreateText adds a reading passage
func (h *AdminHandler) CreateText(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	language := r.FormValue("language")
	title := r.FormValue("title")
	content := r.FormValue("content")
	level, err := strconv.Atoi(r.FormValue("level"))
	if err != nil {
		h.renderDashboard(w, r, "El nivel debe ser un número", "")
		return
	}
	if err := validation.ValidateLanguage(language); err != nil {
		h.renderDashboard(w, r, err.Error(), "")
		return
	}
	if err := validation.ValidateReadingLevel(level); err != nil {
		h.renderDashboard(w, r, err.Error(), "")
		return
	}
	if title == "" || content == "" {
		h.renderDashboard(w, r, "El texto necesita título y contenido", "")
		return
	}

	if _, err := h.textRepo.CreateText(language, level, title, content); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error creating text", err)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// CreateQuestion attaches a multiple-choice question to a passage
func (h *AdminHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	textID, err := parseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	text, err := h.textRepo.GetTextByID(textID)
	if err != nil || text == nil {
		http.NotFound(w, r)
		return
	}

	var options []string
	for _, field := range []string{"option_1", "option_2", "option_3", "option_4"} {
		if value := r.FormValue(field); value != "" {
			options = append(options, value)
		}
	}
	correct, err := strconv.Atoi(r.FormValue("correct_option"))
	if err != nil || correct < 1 || correct > len(options) {
		h.renderDashboard(w, r, "La respuesta correcta no es válida", "")
		return
	}
	prompt := r.FormValue("prompt")
	if prompt == "" || len(options) < 2 {
		h.renderDashboard(w, r, "La pregunta necesita enunciado y al menos dos opciones", "")
		return
	}

	question := &models.Question{
		TextID:        textID,
		Level:         text.Level,
		Prompt:        prompt,
		Options:       options,
		CorrectOption: correct - 1,
	}
	if _, err := h.textRepo.CreateQuestion(question); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error creating question", err)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// DeleteText removes a passage and its questions
func (h *AdminHandler) DeleteText(w http.ResponseWriter, r *http.Request) {
	textID, err := parseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.textRepo.DeleteText(textID); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error deleting text", err)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// ImportContent handles an Excel or CSV content upload
func (h *AdminHandler) ImportContent(w http.ResponseWriter, r *http.Request) {
	// 10MB upload cap
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("content_file")
	if err != nil {
		h.renderDashboard(w, r, "Selecciona un archivo para importar", "")
		return
	}
	defer file.Close()

	// The importer reads from a path, spool the upload to a temp file
	tempFile, err := os.CreateTemp("", "import-*"+filepath.Ext(header.Filename))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error creating temp file", err)
		return
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := io.Copy(tempFile, file); err != nil {
		tempFile.Close()
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error saving upload", err)
		return
	}
	tempFile.Close()

	var result *importer.Result
	switch r.FormValue("kind") {
	case "texts":
		result, err = h.importer.ImportTexts(tempPath)
	default:
		result, err = h.importer.ImportWords(tempPath)
	}
	if err != nil {
		h.renderDashboard(w, r, "Error al importar: "+err.Error(), "")
		return
	}

	message := fmt.Sprintf("Importación completada: %d palabras, %d textos, %d preguntas, %d filas omitidas",
		result.WordsImported, result.TextsImported, result.QuestionsImported, result.Skipped)
	h.renderDashboard(w, r, "", message)
}

// ExportDatabase streams a full JSON backup as a download
func (h *AdminHandler) ExportDatabase(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("velocilector_backup_%s.json", timestamp)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := h.backupService.ExportToWriter(w); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to export database", "Error exporting database", err)
		return
	}

	log.Printf("Database exported by admin user %s", user.Email)
}

// ImportDatabase restores a JSON backup from an uploaded file
func (h *AdminHandler) ImportDatabase(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("backup_file")
	if err != nil {
		h.renderDashboard(w, r, "Selecciona un archivo de copia de seguridad", "")
		return
	}
	defer file.Close()

	if err := h.backupService.ImportFromReader(file); err != nil {
		log.Printf("Error importing database: %v", err)
		h.renderDashboard(w, r, "Error al restaurar la copia: "+err.Error(), "")
		return
	}

	log.Printf("Database imported successfully by admin user %s", user.Email)
	h.renderDashboard(w, r, "", "Copia de seguridad restaurada")
}
