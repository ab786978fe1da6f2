package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"
)

// Report kinds.
const (
	KindCustomer = "customer"
	KindBulk     = "bulk"
)

// DefaultArchiveSize is the number of rendered reports kept for download.
const DefaultArchiveSize = 64

var ErrReportNotFound = errors.New("report not found")

// Entry describes an archived report.
type Entry struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	GeneratedBy string    `json:"generatedBy"`
	GeneratedAt time.Time `json:"generatedAt"`
	CustomerIDs []string  `json:"customerIds"`
	Size        int       `json:"size"`
}

// Stored is a rendered report with its metadata.
type Stored struct {
	Entry
	Body []byte
}

// Document is anything the archive can hold.
type Document interface {
	Entry() Entry
	Render(w io.Writer) error
}

func (r *Report) Entry() Entry {
	return Entry{
		ID:          r.ID,
		Kind:        KindCustomer,
		Title:       "Customer Risk Report: " + r.Customer.Name,
		GeneratedBy: DefaultGeneratedBy,
		GeneratedAt: r.GeneratedAt,
		CustomerIDs: []string{r.Customer.ID},
	}
}

func (b *Bulk) Entry() Entry {
	ids := make([]string, len(b.Customers))
	for i, c := range b.Customers {
		ids[i] = c.ID
	}
	return Entry{
		ID:          b.ID,
		Kind:        KindBulk,
		Title:       b.Type,
		GeneratedBy: b.GeneratedBy,
		GeneratedAt: b.GeneratedAt,
		CustomerIDs: ids,
	}
}

// Snapshot renders doc into a Stored value.
func Snapshot(doc Document) (Stored, error) {
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return Stored{}, err
	}
	e := doc.Entry()
	e.Size = buf.Len()
	return Stored{Entry: e, Body: buf.Bytes()}, nil
}

// Archive keeps the most recent rendered reports, dropping the oldest once
// full. It is safe for concurrent use.
type Archive struct {
	mu       sync.RWMutex
	capacity int
	order    []string // oldest first
	items    map[string]Stored
}

// NewArchive returns an archive holding up to capacity reports; a capacity
// below 1 uses DefaultArchiveSize.
func NewArchive(capacity int) *Archive {
	if capacity < 1 {
		capacity = DefaultArchiveSize
	}
	return &Archive{capacity: capacity, items: make(map[string]Stored, capacity)}
}

func (a *Archive) Put(s Stored) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.items[s.ID]; !ok {
		a.order = append(a.order, s.ID)
	}
	a.items[s.ID] = s
	for len(a.order) > a.capacity {
		delete(a.items, a.order[0])
		a.order = a.order[1:]
	}
}

func (a *Archive) Get(id string) (Stored, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, ok := a.items[id]
	if !ok {
		return Stored{}, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	return s, nil
}

// List returns archived entries, newest first.
func (a *Archive) List() []Entry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Entry, 0, len(a.order))
	for _, id := range slices.Backward(a.order) {
		out = append(out, a.items[id].Entry)
	}
	return out
}

func (a *Archive) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.order)
}
