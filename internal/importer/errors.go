package importer

import "fmt"

// ParseError means the input structure itself was unusable (bad or missing
// header). Nothing is committed; the user has to fix the source.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse roster input: %s", e.Reason)
}

// MappingCollisionError blocks applying a side mapping in which two distinct
// raw labels collapse onto the same canonical slot.
type MappingCollisionError struct {
	Labels []string
	Slot   string
}

func (e *MappingCollisionError) Error() string {
	return fmt.Sprintf("side mapping collision: labels %v all map to %q", e.Labels, e.Slot)
}

// PartialImportError is terminal: earlier batches committed, a later batch
// exhausted its retries. Imported always carries the exact committed count.
type PartialImportError struct {
	Imported    int
	FailedBatch int // 1-based index of the batch that exhausted retries
	Cause       error
}

func (e *PartialImportError) Error() string {
	return fmt.Sprintf("import stopped at batch %d after committing %d records: %v",
		e.FailedBatch, e.Imported, e.Cause)
}

func (e *PartialImportError) Unwrap() error { return e.Cause }

// TotalImportError means the very first batch failed exhaustively, so no
// records were committed at all.
type TotalImportError struct {
	Cause error
}

func (e *TotalImportError) Error() string {
	return fmt.Sprintf("import failed before committing any records: %v", e.Cause)
}

func (e *TotalImportError) Unwrap() error { return e.Cause }

// CanceledError reports a caller-initiated cancellation between batches.
// Batches already committed stay committed.
type CanceledError struct {
	Imported int
	Cause    error
}

func (e *CanceledError) Error() string {
	return fmt.Sprintf("import canceled after committing %d records: %v", e.Imported, e.Cause)
}

func (e *CanceledError) Unwrap() error { return e.Cause }
