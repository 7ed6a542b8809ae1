// Package report собирает записи выполнения и печатает итог run.
package report

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/shaiso/Zenith/internal/domain"
)

// Reporter — потокобезопасный журнал ExecutionRecord.
//
// Записи хранятся в порядке завершения единиц работы.
type Reporter struct {
	mu      sync.Mutex
	records []domain.ExecutionRecord
}

// New создаёт пустой Reporter.
func New() *Reporter {
	return &Reporter{}
}

// Add добавляет запись.
func (r *Reporter) Add(rec domain.ExecutionRecord) {
	r.mu.Lock()
	r.records = append(r.records, rec)
	r.mu.Unlock()
}

// Records возвращает копию всех записей.
func (r *Reporter) Records() []domain.ExecutionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.ExecutionRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Len возвращает количество записей.
func (r *Reporter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Misses возвращает записи, для которых команда действительно запускалась.
func (r *Reporter) Misses() []domain.ExecutionRecord {
	return r.filter(func(rec *domain.ExecutionRecord) bool { return !rec.CacheHit() })
}

// Hits возвращает записи, взятые из кэша.
func (r *Reporter) Hits() []domain.ExecutionRecord {
	return r.filter(func(rec *domain.ExecutionRecord) bool { return rec.CacheHit() })
}

func (r *Reporter) filter(keep func(*domain.ExecutionRecord) bool) []domain.ExecutionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.ExecutionRecord, 0, len(r.records))
	for i := range r.records {
		if keep(&r.records[i]) {
			out = append(out, r.records[i])
		}
	}
	return out
}

// Summary — агрегированный итог run.
type Summary struct {
	Projects int                      `json:"projects"`
	Hits     int                      `json:"hits"`
	Misses   int                      `json:"misses"`
	Records  []domain.ExecutionRecord `json:"records"`
}

// Summary возвращает агрегированный итог.
func (r *Reporter) Summary() Summary {
	records := r.Records()
	s := Summary{Projects: len(records), Records: records}
	for i := range records {
		if records[i].CacheHit() {
			s.Hits++
		} else {
			s.Misses++
		}
	}
	return s
}

// Render печатает таблицу промахов с таймингами и итог по попаданиям.
func (r *Reporter) Render(w io.Writer) error {
	misses := r.Misses()
	hits := len(r.Hits())

	if len(misses) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "PROJECT\tOUTCOME\tFETCH\tRUN\tCACHE\tTOTAL")
		fmt.Fprintln(tw, "-------\t-------\t-----\t---\t-----\t-----")
		for i := range misses {
			rec := &misses[i]
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				rec.Project,
				rec.Outcome,
				formatDuration(rec.FetchDuration),
				formatDuration(rec.RunDuration),
				formatDuration(rec.CacheDuration),
				formatDuration(rec.Total()),
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d of %d projects restored from cache\n", hits, hits+len(misses))
	return err
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
