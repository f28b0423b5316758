package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// - ErrNotFound: no record exists for the key
// - ErrConflict: the record changed concurrently and the write was discarded
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
