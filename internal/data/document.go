// Package data loads the game configuration (item definitions, options, sets,
// combination bonuses) and character loadouts from YAML documents.
package data

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/crypto/blake2b"
)

// Known document names. A configuration may omit any of them.
const (
	DocLevelBonus   = "level_bonus.yaml"
	DocOptions      = "options.yaml"
	DocItems        = "items.yaml"
	DocSets         = "sets.yaml"
	DocCombinations = "combinations.yaml"
)

// KnownDocuments lists the documents in resolution order.
var KnownDocuments = []string{DocLevelBonus, DocOptions, DocItems, DocSets, DocCombinations}

var (
	ErrUnknownDocument   = errors.New("unknown document")
	ErrDuplicateDocument = errors.New("duplicate document")
	ErrUnknownReference  = errors.New("unknown reference")
	ErrDuplicateName     = errors.New("duplicate name")
	ErrInvalidValue      = errors.New("invalid value")
)

// Document: один YAML документ конфигурации.
type Document struct {
	Name    string
	Content []byte
}

// DocumentSource provides the raw configuration documents.
//
//go:generate mockgen -source=document.go -destination=datamock/mock_source.go -package=datamock DocumentSource
type DocumentSource interface {
	LoadDocuments(ctx context.Context) ([]Document, error)
}

// DirSource reads the known documents from a directory.
type DirSource struct {
	Dir string
}

// LoadDocuments reads every known document present in the directory.
// Missing documents are skipped.
func (s DirSource) LoadDocuments(ctx context.Context) ([]Document, error) {
	docs := make([]Document, 0, len(KnownDocuments))
	for _, name := range KnownDocuments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(s.Dir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		docs = append(docs, Document{Name: name, Content: content})
	}
	return docs, nil
}

// Fingerprint returns the blake2b-256 hash of the documents. The order of docs
// does not matter.
func Fingerprint(docs []Document) [32]byte {
	sorted := make([]Document, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	h, _ := blake2b.New256(nil) // ошибка возможна только для ключа > 64 байт
	for _, d := range sorted {
		fmt.Fprintf(h, "%s\x00%d\x00", d.Name, len(d.Content))
		h.Write(d.Content)
	}

	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

func isKnownDocument(name string) bool {
	for _, known := range KnownDocuments {
		if known == name {
			return true
		}
	}
	return false
}
