package stats

import (
	"cmp"
	"slices"
	"time"

	"github.com/kerbaras/mangastats/pkg/data"
)

// GraphPoint is one value of the storage-over-time chart. Ref is the dialog
// that details the operations behind the point.
type GraphPoint struct {
	Value int64
	Label string
	Ref   Dialog
}

// StartLabel labels the balance before the first operation.
const StartLabel = "Start"

// Labeler renders point labels relative to Now in Location.
type Labeler struct {
	Now      func() time.Time
	Location *time.Location
}

func (l Labeler) location() *time.Location {
	if l.Location == nil {
		return time.Local
	}
	return l.Location
}

func (l Labeler) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}

// Day renders "Today", "Yesterday" or the calendar date.
func (l Labeler) Day(t time.Time) string {
	t = t.In(l.location())
	now := l.now().In(l.location())
	switch dayKey(t) {
	case dayKey(now):
		return "Today"
	case dayKey(now.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return t.Format("2006-01-02")
	}
}

func (l Labeler) Month(t time.Time) string {
	return t.In(l.location()).Format("01.2006")
}

// Operation renders the day label followed by the time of day.
func (l Labeler) Operation(t time.Time) string {
	return l.Day(t) + " " + t.In(l.location()).Format("15:04")
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// Chronological returns a copy of ops ordered by date, then id.
func Chronological(ops []data.DownloadStatOperation) []data.DownloadStatOperation {
	sorted := slices.Clone(ops)
	slices.SortStableFunc(sorted, func(a, b data.DownloadStatOperation) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}

// StartBalance is the balance before the first of ops, given the balance
// after the last one.
func StartBalance(ops []data.DownloadStatOperation, currentTotal int64) int64 {
	balance := currentTotal
	for i := len(ops) - 1; i >= 0; i-- {
		balance -= ops[i].Size
	}
	return balance
}

// BuildSeries replays the ledger into chart points ending at currentTotal.
// The first point is the start balance. Ungrouped, every operation is a
// point; grouped by day or month, every calendar bucket is one point holding
// the balance after all of its operations. Input order does not matter.
func BuildSeries(ops []data.DownloadStatOperation, currentTotal int64, mode GraphGroupMode, labels Labeler) []GraphPoint {
	sorted := Chronological(ops)
	balance := StartBalance(sorted, currentTotal)

	points := make([]GraphPoint, 0, len(sorted)+1)
	points = append(points, GraphPoint{
		Value: balance,
		Label: StartLabel,
		Ref:   SeriesStartDialog{Balance: balance},
	})

	if mode == GraphNone {
		for _, op := range sorted {
			balance += op.Size
			points = append(points, GraphPoint{
				Value: balance,
				Label: labels.Operation(op.Time()),
				Ref:   OperationDialog{Op: op},
			})
		}
		return points
	}

	type bucket struct {
		label string
		ops   []data.DownloadStatOperation
	}
	index := make(map[string]int)
	var buckets []bucket
	for _, op := range sorted {
		t := op.Time().In(labels.location())
		key, label := dayKey(t), labels.Day(t)
		if mode == GraphByMonth {
			key, label = monthKey(t), labels.Month(t)
		}
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, bucket{label: label})
		}
		buckets[i].ops = append(buckets[i].ops, op)
	}

	for _, b := range buckets {
		for _, op := range b.ops {
			balance += op.Size
		}
		points = append(points, GraphPoint{
			Value: balance,
			Label: b.label,
			Ref:   MultiOperationDialog{Ops: b.ops},
		})
	}
	return points
}
