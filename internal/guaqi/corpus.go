package guaqi

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed lines.yaml
var linesYAML []byte

// Fallback texts used when the corpus has no entry
const (
	fallbackText         = "时运变迁，居安思危。"
	fallbackSignificance = "运势"
	corpusSignificance   = "爻辞"

	yongYangText         = "天德不可为首。阳极变动，群龙无首，吉。"
	yongYangSignificance = "吉/变"
	yongYinText          = "地德守正。阴极利贞，顺承天道。"
	yongYinSignificance  = "利/贞"
)

// lineCorpus is parsed once at init and only read afterwards
var lineCorpus = mustLoadCorpus(linesYAML)

// LoadCorpus parses a line-text corpus: hexagram key → six texts
func LoadCorpus(data []byte) (map[string][]string, error) {
	var corpus map[string][]string
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&corpus); err != nil {
		return nil, fmt.Errorf("failed to decode line corpus: %w", err)
	}

	for key, lines := range corpus {
		if _, ok := hexagrams[key]; !ok {
			return nil, fmt.Errorf("line corpus: unknown hexagram %q", key)
		}
		if len(lines) != 6 {
			return nil, fmt.Errorf("line corpus: %s has %d lines, want 6", key, len(lines))
		}
	}
	return corpus, nil
}

func mustLoadCorpus(data []byte) map[string][]string {
	corpus, err := LoadCorpus(data)
	if err != nil {
		panic(err)
	}
	return corpus
}

// lineText resolves the interpretive text for one line or the void state
func lineText(key string, yaoIndex int, isYong, isYang bool) (text, significance string) {
	if isYong {
		if isYang {
			return yongYangText, yongYangSignificance
		}
		return yongYinText, yongYinSignificance
	}
	if lines, ok := lineCorpus[key]; ok && yaoIndex >= 0 && yaoIndex < len(lines) {
		return lines[yaoIndex], corpusSignificance
	}
	return fallbackText, fallbackSignificance
}
