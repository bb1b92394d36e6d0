package export

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

// ReporterFactory creates a Reporter writing into w
type ReporterFactory func(w io.Writer) Reporter

// Registry manages the report formats
type Registry interface {
	// Register adds a format and the file extension used when it is written to disk
	Register(format, extension string, factory ReporterFactory) error
	// Create instantiates a reporter for the format
	Create(format string, w io.Writer) (Reporter, error)
	// Extension returns the file extension of the format
	Extension(format string) (string, error)
	// ListFormats returns the registered formats in name order
	ListFormats() []string
}

type entry struct {
	extension string
	factory   ReporterFactory
}

type registry struct {
	mu      sync.RWMutex
	formats map[string]entry
}

// NewRegistry creates an empty format registry
func NewRegistry() Registry {
	return &registry{
		formats: make(map[string]entry),
	}
}

// NewDefaultRegistry creates a registry holding the text, table and json formats
func NewDefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register(FormatText, "txt", NewTextReporter)
	_ = r.Register(FormatTable, "txt", NewTableReporter)
	_ = r.Register(FormatJSON, "json", NewJSONReporter)
	return r
}

func (r *registry) Register(format, extension string, factory ReporterFactory) error {
	if format == "" {
		return fmt.Errorf("format name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formats[format]; exists {
		return fmt.Errorf("format %q is already registered", format)
	}

	r.formats[format] = entry{extension: extension, factory: factory}
	return nil
}

func (r *registry) Create(format string, w io.Writer) (Reporter, error) {
	e, err := r.lookup(format)
	if err != nil {
		return nil, err
	}
	return e.factory(w), nil
}

func (r *registry) Extension(format string) (string, error) {
	e, err := r.lookup(format)
	if err != nil {
		return "", err
	}
	return e.extension, nil
}

func (r *registry) ListFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.formats))
	for format := range r.formats {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

func (r *registry) lookup(format string) (entry, error) {
	r.mu.RLock()
	e, exists := r.formats[format]
	r.mu.RUnlock()

	if !exists {
		return entry{}, fmt.Errorf("format %q is not registered, supported formats: %v", format, r.ListFormats())
	}
	return e, nil
}
