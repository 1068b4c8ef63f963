// Package audit scans the word catalog for entries that should not be there.
package audit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wordbook/api/internal/catalog"
	"github.com/wordbook/api/internal/dictionary"
	"github.com/wordbook/api/internal/model"
	"github.com/wordbook/api/internal/validator"
)

// Issue types.
const (
	IssueInvalidWord   = "invalid_word"
	IssueNotNormalized = "not_normalized"
	IssueNoDefinition  = "no_definition"
	IssueLookupFailed  = "lookup_failed"
)

type Issue struct {
	Word    string `json:"word"`
	ID      string `json:"id"`
	Type    string `json:"type"`
	Details string `json:"details,omitempty"`
}

type Report struct {
	Total        int64              `json:"total"`
	Issues       []Issue            `json:"issues"`
	IssuesByType map[string][]Issue `json:"issuesByType"`
	Elapsed      time.Duration      `json:"elapsed"`
}

type Lister interface {
	ListWords(ctx context.Context, q catalog.Query) (*catalog.Page, error)
}

type Options struct {
	Workers   int
	BatchSize int
	// Provider, when set, is asked for every valid word; words it does not
	// know are reported as IssueNoDefinition.
	Provider dictionary.Provider
	// Progress is called every 1000 words when set.
	Progress func(processed, issues int64)
}

type Auditor struct {
	lister Lister
	opts   Options
}

func New(lister Lister, opts Options) *Auditor {
	if opts.Workers <= 0 {
		opts.Workers = 10
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = catalog.MaxLimit
	}
	return &Auditor{lister: lister, opts: opts}
}

// Run walks the whole catalog through the paginator and checks every word
// on a pool of workers.
func (a *Auditor) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	wordChan := make(chan model.Word, a.opts.Workers*10)
	issueChan := make(chan Issue, 1000)

	var processed, issueCount int64
	var wg sync.WaitGroup
	for i := 0; i < a.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for word := range wordChan {
				for _, issue := range a.auditWord(ctx, word) {
					issueChan <- issue
					atomic.AddInt64(&issueCount, 1)
				}
				p := atomic.AddInt64(&processed, 1)
				if a.opts.Progress != nil && p%1000 == 0 {
					a.opts.Progress(p, atomic.LoadInt64(&issueCount))
				}
			}
		}()
	}

	var issues []Issue
	done := make(chan struct{})
	go func() {
		for issue := range issueChan {
			issues = append(issues, issue)
		}
		close(done)
	}()

	total, walkErr := a.walk(ctx, wordChan)

	close(wordChan)
	wg.Wait()
	close(issueChan)
	<-done

	if walkErr != nil {
		return nil, walkErr
	}

	report := &Report{
		Total:        total,
		Issues:       issues,
		IssuesByType: make(map[string][]Issue),
		Elapsed:      time.Since(start),
	}
	if report.Issues == nil {
		report.Issues = []Issue{}
	}
	for _, issue := range issues {
		report.IssuesByType[issue.Type] = append(report.IssuesByType[issue.Type], issue)
	}
	return report, nil
}

func (a *Auditor) walk(ctx context.Context, out chan<- model.Word) (int64, error) {
	var total int64
	q := catalog.Query{Limit: a.opts.BatchSize}
	for {
		page, err := a.lister.ListWords(ctx, q)
		if err != nil {
			return total, fmt.Errorf("list words: %w", err)
		}
		total = page.TotalDocs
		for _, w := range page.Results {
			select {
			case out <- w:
			case <-ctx.Done():
				return total, ctx.Err()
			}
		}
		if !page.HasNext || page.Next == nil {
			return total, nil
		}
		q.Next = *page.Next
	}
}

func (a *Auditor) auditWord(ctx context.Context, word model.Word) []Issue {
	var issues []Issue

	if !validator.IsValidWord(word.Value) {
		return append(issues, Issue{Word: word.Value, ID: word.ID, Type: IssueInvalidWord})
	}
	if n := validator.NormalizeWord(word.Value); n != word.Value {
		issues = append(issues, Issue{Word: word.Value, ID: word.ID, Type: IssueNotNormalized, Details: "expected " + n})
	}

	if a.opts.Provider != nil {
		entries, err := a.opts.Provider.Lookup(ctx, word.Value)
		switch {
		case err != nil:
			issues = append(issues, Issue{Word: word.Value, ID: word.ID, Type: IssueLookupFailed, Details: err.Error()})
		case len(entries) == 0:
			issues = append(issues, Issue{Word: word.Value, ID: word.ID, Type: IssueNoDefinition})
		}
	}
	return issues
}
