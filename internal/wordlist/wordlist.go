// Package wordlist loads word lists from files and ships a built-in default.
package wordlist

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed default_en.txt
var embedded embed.FS

// LoadWords reads one word per line from the provided file path, dropping
// lines the language filter rejects.
func LoadWords(path, lang string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return readWords(file, FilterForLang(lang))
}

// LoadDefault returns the embedded English word list. Only "en" is bundled;
// other languages must be provided as files.
func LoadDefault(lang string) ([]string, error) {
	if strings.ToLower(lang) != "en" {
		return nil, fmt.Errorf("no built-in word list for language %q", lang)
	}
	file, err := embedded.Open("default_en.txt")
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for embedded list.
			_ = cerr
		}
	}()
	return readWords(file, FilterForLang(lang))
}

func readWords(r io.Reader, keep FilterFunc) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !keep(line) {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
