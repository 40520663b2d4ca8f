package importer

import (
	"errors"
	"fmt"
	"sync"

	ds "github.com/gurbos/gcd/datastore"
	"go.uber.org/multierr"
)

// Stage names the pipeline step a failure happened in.
type Stage string

const (
	StageCatalog  Stage = "catalog"
	StageTaxonomy Stage = "taxonomy"
	StageGame     Stage = "game"
	StageGameInfo Stage = "game_info"
	StageImage    Stage = "image"
)

// Failure is one error the pipeline recorded and moved past.
type Failure struct {
	Stage   Stage
	Subject string
	Err     error
	// Per-field messages when the CMS rejected the payload.
	ValidationErrors map[string][]string
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Stage, f.Subject, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

type validationErrorer interface {
	ValidationErrors() map[string][]string
}

func newFailure(stage Stage, subject string, err error) Failure {
	f := Failure{Stage: stage, Subject: subject, Err: err}
	var v validationErrorer
	if errors.As(err, &v) {
		f.ValidationErrors = v.ValidationErrors()
	}
	return f
}

// Report collects what a run created, skipped and failed on. Safe for
// concurrent use.
type Report struct {
	mu       sync.Mutex
	created  []ds.Entity
	skipped  []string
	taxonomy map[ds.Kind]int
	failures []Failure
}

func NewReport() *Report {
	return &Report{taxonomy: make(map[ds.Kind]int)}
}

func (r *Report) addCreated(game ds.Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, game)
}

func (r *Report) addSkipped(title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped = append(r.skipped, title)
}

func (r *Report) addTaxonomy(kind ds.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taxonomy[kind]++
}

func (r *Report) addFailure(f Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, f)
}

// Created returns the games created, in completion order.
func (r *Report) Created() []ds.Entity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ds.Entity(nil), r.created...)
}

// Skipped returns the titles that already existed.
func (r *Report) Skipped() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.skipped...)
}

// TaxonomyCreated returns how many records of kind were created.
func (r *Report) TaxonomyCreated(kind ds.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.taxonomy[kind]
}

func (r *Report) Failures() []Failure {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Failure(nil), r.failures...)
}

// Err combines every recorded failure, or returns nil.
func (r *Report) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var err error
	for _, f := range r.failures {
		err = multierr.Append(err, f)
	}
	return err
}
