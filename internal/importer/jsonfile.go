package importer

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// bulkFile is the generator output: {"questions": [...]}
type bulkFile struct {
	Questions []struct {
		Question      string      `json:"question"`
		Options       flexOptions `json:"options"`
		CorrectAnswer string      `json:"correct_answer"`
		Subject       string      `json:"subject"`
		SubSubject    string      `json:"sub_subject"`
		Difficulty    flexString  `json:"difficulty"`
		Reasoning     string      `json:"reasoning"`
	} `json:"questions"`
}

// processedLine is one line of the processed JSONL format
type processedLine struct {
	QuestionText  string      `json:"question_text"`
	Options       flexOptions `json:"options"`
	CorrectOption string      `json:"correct_option"`
	Subject       string      `json:"subject"`
	SubSubject    string      `json:"sub_subject"`
	Difficulty    flexString  `json:"difficulty"`
	Reasoning     string      `json:"reasoning"`
}

func readJSON(path string) ([]record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	var data bulkFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON file: %w", err)
	}

	records := make([]record, 0, len(data.Questions))
	for i, q := range data.Questions {
		records = append(records, record{
			line:       i + 1,
			text:       q.Question,
			options:    q.Options,
			correct:    q.CorrectAnswer,
			subject:    q.Subject,
			subSubject: q.SubSubject,
			difficulty: string(q.Difficulty),
			reasoning:  q.Reasoning,
		})
	}
	return records, nil
}

// readJSONL reads one question per line. Unparseable lines are reported in
// result.Errors and skipped.
func readJSONL(path string, result *Result) ([]record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSONL file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var records []record
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var q processedLine
		if err := json.Unmarshal([]byte(line), &q); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: %v", lineNum, err))
			continue
		}
		records = append(records, record{
			line:       lineNum,
			text:       q.QuestionText,
			options:    q.Options,
			correct:    q.CorrectOption,
			subject:    q.Subject,
			subSubject: q.SubSubject,
			difficulty: string(q.Difficulty),
			reasoning:  q.Reasoning,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading JSONL: %w", err)
	}
	return records, nil
}
