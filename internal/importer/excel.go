package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dortega/velocilector/internal/models"
	"github.com/dortega/velocilector/internal/repository"
	"github.com/dortega/velocilector/internal/validation"
)

// Sheet names the importer expects in a content workbook
const (
	wordsSheet     = "Words"
	textsSheet     = "Texts"
	questionsSheet = "Questions"
)

// Result holds the outcome of an import operation
type Result struct {
	WordsImported     int
	TextsImported     int
	QuestionsImported int
	Skipped           int
	Errors            []string
}

// Importer loads word pools and reading passages from spreadsheet files.
// Word lists also load from plain CSV; texts and questions need the
// multi-sheet Excel workbook.
type Importer struct {
	words *repository.WordRepository
	texts *repository.TextRepository
}

// New creates a new content importer
func New(words *repository.WordRepository, texts *repository.TextRepository) *Importer {
	return &Importer{words: words, texts: texts}
}

// ImportWords imports a word pool from an .xlsx or .csv file. Each row is
// language, level, text. A header row is detected and skipped.
func (imp *Importer) ImportWords(path string) (*Result, error) {
	rows, err := readRows(path, wordsSheet)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	var batch []models.Word
	for i, row := range rows {
		rowNum := i + 1
		word, err := parseWordRow(row)
		if err != nil {
			if isHeaderRow(i, row) {
				continue
			}
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		batch = append(batch, *word)
	}

	inserted, err := imp.words.BulkInsertWords(batch)
	if err != nil {
		return result, fmt.Errorf("failed to insert words: %w", err)
	}
	result.WordsImported = inserted
	return result, nil
}

// ImportTexts imports reading passages and their questions from an Excel
// workbook. The Texts sheet holds language, level, title, content; the
// Questions sheet references passages by title: title, prompt, four
// options, correct option number (1-based).
func (imp *Importer) ImportTexts(path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	result := &Result{}

	textRows, err := f.GetRows(textsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet: %w", textsSheet, err)
	}

	// Passage titles map to IDs so question rows can reference them.
	textIDs := make(map[string]int64)
	for i, row := range textRows {
		rowNum := i + 1
		if isHeaderRow(i, row) {
			continue
		}
		if len(row) < 4 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: expected language, level, title, content", rowNum))
			continue
		}

		level, err := parseLevel(row[1])
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		language := strings.TrimSpace(row[0])
		title := strings.TrimSpace(row[2])
		content := strings.TrimSpace(row[3])
		if title == "" || content == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: empty title or content", rowNum))
			continue
		}

		text, err := imp.texts.CreateText(language, level, title, content)
		if err != nil {
			return result, fmt.Errorf("row %d: %w", rowNum, err)
		}
		textIDs[strings.ToLower(title)] = text.ID
		result.TextsImported++
	}

	questionRows, err := f.GetRows(questionsSheet)
	if err != nil {
		// A workbook without questions is a valid word-pool-only import.
		return result, nil
	}

	for i, row := range questionRows {
		rowNum := i + 1
		if isHeaderRow(i, row) {
			continue
		}
		if len(row) < 7 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("questions row %d: expected title, prompt, 4 options, correct", rowNum))
			continue
		}

		textID, ok := textIDs[strings.ToLower(strings.TrimSpace(row[0]))]
		if !ok {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("questions row %d: unknown text %q", rowNum, row[0]))
			continue
		}

		correct, err := strconv.Atoi(strings.TrimSpace(row[6]))
		if err != nil || correct < 1 || correct > 4 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("questions row %d: correct option must be 1-4", rowNum))
			continue
		}

		options := []string{
			strings.TrimSpace(row[2]),
			strings.TrimSpace(row[3]),
			strings.TrimSpace(row[4]),
			strings.TrimSpace(row[5]),
		}

		_, err = imp.texts.CreateQuestion(&models.Question{
			TextID:        textID,
			Prompt:        strings.TrimSpace(row[1]),
			Options:       options,
			CorrectOption: correct - 1,
		})
		if err != nil {
			return result, fmt.Errorf("questions row %d: %w", rowNum, err)
		}
		result.QuestionsImported++
	}

	return result, nil
}

// readRows loads all rows from an Excel sheet or a CSV file
func readRows(path, sheet string) ([][]string, error) {
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		return readCSV(path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseWordRow validates one language, level, text row
func parseWordRow(row []string) (*models.Word, error) {
	if len(row) < 3 {
		return nil, fmt.Errorf("expected language, level, text")
	}

	language := strings.TrimSpace(row[0])
	if err := validation.ValidateLanguage(language); err != nil {
		return nil, err
	}

	level, err := parseLevel(row[1])
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(row[2])
	if text == "" {
		return nil, fmt.Errorf("empty word")
	}

	return &models.Word{Language: language, Level: level, Text: text}, nil
}

func parseLevel(s string) (int, error) {
	level, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid level %q", s)
	}
	if err := validation.ValidateReadingLevel(level); err != nil {
		return 0, err
	}
	return level, nil
}

// isHeaderRow reports whether the first row looks like column labels
// rather than data
func isHeaderRow(index int, row []string) bool {
	if index != 0 || len(row) < 2 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(row[1]))
	return err != nil
}
