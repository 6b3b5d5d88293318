package service

import (
	"fmt"
	"sort"

	"pdf-workbench/internal/domain"
)

// ValidateSelection checks every range and page against total before anything
// is extracted. All problems are reported together.
func ValidateSelection(req domain.SplitRequest, total int) domain.SelectionErrors {
	var errs domain.SelectionErrors

	for i, r := range req.Ranges {
		if r.Start < 1 || r.Start > total {
			errs = append(errs, fmt.Sprintf("Range %d: Start page %d is out of bounds (1-%d)", i+1, r.Start, total))
		}
		if r.End < 1 || r.End > total {
			errs = append(errs, fmt.Sprintf("Range %d: End page %d is out of bounds (1-%d)", i+1, r.End, total))
		}
		if r.Start > r.End {
			errs = append(errs, fmt.Sprintf("Range %d: Start page %d cannot be greater than end page %d", i+1, r.Start, r.End))
		}
	}

	for _, p := range req.Pages {
		if p < 1 || p > total {
			errs = append(errs, fmt.Sprintf("Page %d is out of bounds (1-%d)", p, total))
		}
	}

	return errs
}

// splitUnit is one output document of a split.
type splitUnit struct {
	filename string
	pages    []int
}

// splitUnits lists the outputs for a validated request. Ranges take precedence
// over pages; with neither, every page becomes its own unit.
func splitUnits(req domain.SplitRequest, total int) []splitUnit {
	switch {
	case len(req.Ranges) > 0:
		units := make([]splitUnit, 0, len(req.Ranges))
		for _, r := range req.Ranges {
			units = append(units, splitUnit{
				filename: fmt.Sprintf("pages_%d_to_%d.pdf", r.Start, r.End),
				pages:    r.Pages(),
			})
		}
		return units
	case len(req.Pages) > 0:
		pages := sortedUnique(req.Pages)
		units := make([]splitUnit, 0, len(pages))
		for _, p := range pages {
			units = append(units, splitUnit{filename: fmt.Sprintf("page_%d.pdf", p), pages: []int{p}})
		}
		return units
	default:
		units := make([]splitUnit, 0, total)
		for p := 1; p <= total; p++ {
			units = append(units, splitUnit{filename: fmt.Sprintf("page_%d.pdf", p), pages: []int{p}})
		}
		return units
	}
}

// combinedPages is the sorted union of all units without duplicates.
func combinedPages(units []splitUnit) []int {
	var all []int
	for _, u := range units {
		all = append(all, u.pages...)
	}
	return sortedUnique(all)
}

func sortedUnique(pages []int) []int {
	seen := make(map[int]struct{}, len(pages))
	out := make([]int, 0, len(pages))
	for _, p := range pages {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
