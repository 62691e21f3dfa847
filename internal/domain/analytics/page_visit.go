// Package analytics records storefront page views.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jeenmata/impex/internal/domain/shared"
)

// TablePageVisits is the remote table holding page visits
const TablePageVisits = "page_visits"

// PageVisit is a single page view
type PageVisit struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	Page        string    `json:"page"`
	UserEmail   string    `json:"user_email,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	CreatedDate time.Time `json:"created_date"`
}

// GetID returns the visit ID
func (v *PageVisit) GetID() string { return v.ID }

// SetID sets the visit ID
func (v *PageVisit) SetID(id string) { v.ID = id }

// Stamp sets the creation time. Visits are never updated.
func (v *PageVisit) Stamp(created, _ time.Time) { v.CreatedDate = created }

// NewPageVisit creates a visit record
func NewPageVisit(path, page, userEmail, userAgent string, now time.Time) (*PageVisit, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, shared.NewValidationError("Path is required")
	}
	if len(userAgent) > 512 {
		userAgent = userAgent[:512]
	}
	return &PageVisit{
		ID:          uuid.NewString(),
		Path:        path,
		Page:        strings.TrimSpace(page),
		UserEmail:   strings.TrimSpace(userEmail),
		UserAgent:   userAgent,
		CreatedDate: now,
	}, nil
}

// PathCount is the number of visits for one path
type PathCount struct {
	Path           string `json:"path"`
	Page           string `json:"page,omitempty"`
	Visits         int    `json:"visits"`
	UniqueVisitors int    `json:"unique_visitors"`
}

// SummarizeVisits aggregates visits per path, busiest first. Unique visitors
// are counted by email; anonymous visits count once per path.
func SummarizeVisits(visits []PageVisit) []PathCount {
	type acc struct {
		count   PathCount
		seen    map[string]struct{}
		hasAnon bool
	}
	byPath := make(map[string]*acc)
	for _, v := range visits {
		a, ok := byPath[v.Path]
		if !ok {
			a = &acc{count: PathCount{Path: v.Path, Page: v.Page}, seen: make(map[string]struct{})}
			byPath[v.Path] = a
		}
		a.count.Visits++
		if v.UserEmail == "" {
			a.hasAnon = true
		} else {
			a.seen[v.UserEmail] = struct{}{}
		}
	}

	out := make([]PathCount, 0, len(byPath))
	for _, a := range byPath {
		a.count.UniqueVisitors = len(a.seen)
		if a.hasAnon {
			a.count.UniqueVisitors++
		}
		out = append(out, a.count)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Visits != out[j].Visits {
			return out[i].Visits > out[j].Visits
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// Repository persists page visits
type Repository = shared.Repository[PageVisit]
