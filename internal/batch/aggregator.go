// Package batch aggregates extraction results from one upload action and
// tracks per-item approval.
package batch

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docstract/docstract/internal/common"
	"github.com/docstract/docstract/internal/entity"
	"github.com/docstract/docstract/internal/export"
)

// Batch is the ordered set of results produced from one upload (a single
// file or an expanded archive). Insertion order is upload/archive iteration
// order and never changes.
type Batch struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Warnings  []string

	mu      sync.Mutex
	results []*entity.ExtractionResult
}

func New() *Batch {
	return &Batch{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
	}
}

// Add appends a result. Results start unapproved.
func (b *Batch) Add(res *entity.ExtractionResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.results = append(b.results, res)
}

// Len returns the number of aggregated results.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.results)
}

// Get returns the result at index.
func (b *Batch) Get(index int) (*entity.ExtractionResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.results) {
		return nil, common.NewAppError("BATCH_INDEX", fmt.Sprintf("no item at index %d", index), common.ErrNotFound)
	}
	return b.results[index], nil
}

// Results returns the results in insertion order.
func (b *Batch) Results() []*entity.ExtractionResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*entity.ExtractionResult, len(b.results))
	copy(out, b.results)
	return out
}

// Approve records the human decision for one item. Declining keeps the
// extraction, it only excludes the item from export.
func (b *Batch) Approve(index int, approved bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.results) {
		return common.NewAppError("BATCH_INDEX", fmt.Sprintf("no item at index %d", index), common.ErrNotFound)
	}
	b.results[index].Approved = approved
	return nil
}

// Approved returns only approved results, in insertion order.
func (b *Batch) Approved() []*entity.ExtractionResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []*entity.ExtractionResult
	for _, r := range b.results {
		if r.Approved {
			out = append(out, r)
		}
	}
	return out
}

// ExportApproved serializes the approved results into a ZIP of JSON
// documents. No approvals yields an empty archive, not an error.
func (b *Batch) ExportApproved(svc *export.Service) ([]byte, error) {
	return svc.Archive(b.Approved())
}
