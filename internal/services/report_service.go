package services

import (
	"encoding/json"
	"os"
	"path/filepath"

	"nexusops/internal/repos"
)

// Source tells callers whether a payload came from the live database or from
// a canned snapshot file, so degraded responses are distinguishable.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

type Snapshot struct {
	Source Source         `json:"source"`
	Data   map[string]any `json:"data"`
}

type ReportService struct {
	Products    *repos.ProductRepo
	Tasks       *repos.PickingRepo
	Activities  *repos.ActivityRepo
	SnapshotDir string
}

func NewReportService(products *repos.ProductRepo, tasks *repos.PickingRepo, activities *repos.ActivityRepo, snapshotDir string) *ReportService {
	return &ReportService{Products: products, Tasks: tasks, Activities: activities, SnapshotDir: snapshotDir}
}

// Dashboard aggregates live counts; on any DB failure it degrades to the
// dashboard.json snapshot instead of failing the page.
func (s *ReportService) Dashboard() (Snapshot, error) {
	counts := map[string]any{}
	live := true

	for _, key := range []string{"inbound", "inspection", "storage", "listing", "sold", "shipping", "returned"} {
		n, err := s.Products.Count(key)
		if err != nil {
			live = false
			break
		}
		counts[key] = n
	}

	if live {
		if pending, err := s.Tasks.List("pending"); err == nil {
			counts["pendingPicks"] = len(pending)
		} else {
			live = false
		}
	}
	if live {
		if acts, err := s.Activities.ListLatest(10); err == nil {
			counts["recentActivities"] = acts
		} else {
			live = false
		}
	}

	if !live {
		return s.fallback("dashboard.json")
	}
	return Snapshot{Source: SourceLive, Data: counts}, nil
}

// Analytics is a thin aggregate over the same tables with its own snapshot.
func (s *ReportService) Analytics() (Snapshot, error) {
	total, err := s.Products.Count("")
	if err != nil {
		return s.fallback("analytics.json")
	}
	sold, err := s.Products.Count("sold")
	if err != nil {
		return s.fallback("analytics.json")
	}
	shipping, err := s.Products.Count("shipping")
	if err != nil {
		return s.fallback("analytics.json")
	}

	return Snapshot{Source: SourceLive, Data: map[string]any{
		"totalProducts": total,
		"sold":          sold,
		"shipping":      shipping,
	}}, nil
}

func (s *ReportService) fallback(name string) (Snapshot, error) {
	b, err := os.ReadFile(filepath.Join(s.SnapshotDir, name))
	if err != nil {
		return Snapshot{}, err
	}
	var data map[string]any
	if err := json.Unmarshal(b, &data); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Source: SourceFallback, Data: data}, nil
}
