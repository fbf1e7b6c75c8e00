// Package questions loads evaluation questions from text or Excel files.
package questions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load reads questions from path. An .xlsx file must contain a "question"
// column; non-empty cell values below the header are collected. Any other
// file is treated as UTF-8 text with one question per line. Zero questions
// is an error.
func Load(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("questions file not found: %w", err)
	}

	var (
		qs  []string
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		qs, err = loadExcel(path)
	} else {
		qs, err = loadText(path)
	}
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, fmt.Errorf("no questions found in questions file: %s", path)
	}
	return qs, nil
}

func loadText(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading questions file: %w", err)
	}
	var qs []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			qs = append(qs, line)
		}
	}
	return qs, nil
}

func loadExcel(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening questions workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets in questions workbook: %s", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no questions found in questions file: %s", path)
	}

	col := -1
	for i, header := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(header), "question") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("no questions found in questions file: %s", path)
	}

	var qs []string
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		text := strings.TrimSpace(row[col])
		if text != "" {
			qs = append(qs, text)
		}
	}
	return qs, nil
}
