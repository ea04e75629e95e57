// Package kbfile reads and writes knowledge bases as YAML or JSON documents:
//
//	entries:
//	  - id: monitoring-247
//	    question: Do you offer 24/7 monitoring?
//	    keywords: [24/7, monitoring, soc]
//	    answer: Yes. ...
//	suggestions:
//	  - Do you offer 24/7 monitoring?
//
// The format is chosen by file extension. Loaded documents are validated
// through kb.New, so a file that loads is always a usable KB.
package kbfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/corey/faq/internal/domain/kb"
)

// Format is a supported serialization.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// ErrUnknownFormat is returned for file extensions other than .yaml, .yml and .json.
var ErrUnknownFormat = errors.New("unknown knowledge base file format")

// Document is the on-disk shape of a knowledge base.
type Document struct {
	Entries     []kb.KnowledgeEntry `json:"entries" yaml:"entries"`
	Suggestions []string            `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// FormatOf picks the format from path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// Load reads and validates the knowledge base at path.
func Load(path string) (*kb.KB, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	k, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return k, nil
}

// Parse decodes data in the given format and validates it.
// Unknown fields are rejected so that typos ("keyword:") do not silently
// drop signals.
func Parse(data []byte, format Format) (*kb.KB, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, kb.ErrEmptyKB
	}

	var doc Document
	switch format {
	case YAML:
		if err := decodeYAML(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}

	return kb.New(doc.Entries, kb.WithSuggestions(doc.Suggestions...))
}

func decodeYAML(data []byte, out *Document) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return err
	}
	var extra interface{}
	if err := dec.Decode(&extra); err == nil {
		return fmt.Errorf("multiple YAML documents are not supported")
	} else if !errors.Is(err, io.EOF) {
		return fmt.Errorf("after first YAML document: %w", err)
	}
	return nil
}

// Marshal encodes k in the given format.
func Marshal(k *kb.KB, format Format) ([]byte, error) {
	doc := Document{Entries: k.Entries(), Suggestions: k.Suggestions()}
	switch format {
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case JSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// Write exports k to path, choosing the format from the extension. The file
// is written to a temp sibling and renamed into place so a watcher never sees
// a half-written document.
func Write(path string, k *kb.KB) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Marshal(k, format)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
