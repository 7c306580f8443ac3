package task

import (
	"slices"
	"time"
)

type mergeEntry struct {
	list     List
	task     Task
	modified time.Time
	start    time.Time
}

// Merge combines collections into a new collection, keeping for each uuid the
// record with the latest modified time.
//
// Lists are visited pending, completed, removed, and within each list the
// collections in argument order. A later record replaces an earlier one only
// when its modified time is strictly greater; the replacement also moves the
// task to the list it was found in. Each resulting list is sorted by start
// time. Tasks with equal start times keep the order in which their uuid was
// first seen.
//
// Every start and modified timestamp is parsed before anything is compared,
// so a malformed timestamp fails the merge with a *ParseError.
// The inputs are not modified.
func Merge(collections ...Collection) (Collection, error) {
	var (
		order   []string
		entries = make(map[string]*mergeEntry)
	)

	for _, l := range Lists {
		for _, c := range collections {
			tasks, _ := c.List(l)
			for _, t := range tasks {
				modified, err := parseField(t, keyModified, t.Modified)
				if err != nil {
					return Collection{}, err
				}
				start, err := parseField(t, keyStart, t.Start)
				if err != nil {
					return Collection{}, err
				}

				existing, ok := entries[t.UUID]
				if !ok {
					order = append(order, t.UUID)
					entries[t.UUID] = &mergeEntry{list: l, task: t, modified: modified, start: start}
					continue
				}

				if modified.After(existing.modified) {
					*existing = mergeEntry{list: l, task: t, modified: modified, start: start}
				}
			}
		}
	}

	buckets := map[List][]*mergeEntry{}
	for _, id := range order {
		e := entries[id]
		buckets[e.list] = append(buckets[e.list], e)
	}

	result := New()
	for _, l := range Lists {
		bucket := buckets[l]
		slices.SortStableFunc(bucket, func(a, b *mergeEntry) int {
			return a.start.Compare(b.start)
		})

		dst, _ := result.list(l)
		for _, e := range bucket {
			*dst = append(*dst, e.task.Clone())
		}
	}

	return result, nil
}
