package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWordsFiltersForLang(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "hello\nrésumé\ndon’t\n\nworld\nCo-op\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	words, err := LoadWords(path, "en")
	if err != nil {
		t.Fatalf("load words: %v", err)
	}
	if len(words) != 2 || words[0] != "hello" || words[1] != "world" {
		t.Fatalf("expected [hello world], got %v", words)
	}

	// Unfiltered languages keep every non-empty line.
	words, err = LoadWords(path, "xx")
	if err != nil {
		t.Fatalf("load words: %v", err)
	}
	if len(words) != 5 {
		t.Fatalf("expected 5 words for unfiltered language, got %v", words)
	}
}

func TestLoadWordsAllFilteredIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("Résumé\nDon’t\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadWords(path, "en"); err == nil {
		t.Fatalf("expected error when the filter rejects every word")
	}
}

func TestLoadDefault(t *testing.T) {
	words, err := LoadDefault("en")
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if len(words) < 100 {
		t.Fatalf("default list suspiciously short: %d words", len(words))
	}
	if words[0] != "the" {
		t.Fatalf("expected 'the' first, got %q", words[0])
	}
}

func TestLoadDefaultUnknownLang(t *testing.T) {
	if _, err := LoadDefault("xx"); err == nil {
		t.Fatalf("expected error for unbundled language")
	}
}
