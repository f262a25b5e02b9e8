package query

import (
	"context"
	"fmt"
	"time"

	"github.com/starford/folio/internal/models"
)

// Latency holds the artificial delay applied to each operation.
type Latency struct {
	ListPosts           time.Duration
	GetPost             time.Duration
	ListPostsByCategory time.Duration
	ListPostsByTag      time.Duration
	ListCategories      time.Duration
	ListTags            time.Duration
	GetSiteInfo         time.Duration
	GetArchive          time.Duration
	Search              time.Duration
}

// Latency profile names.
const (
	LatencyMock = "mock"
	LatencyNone = "none"
)

// MockLatency mimics a remote API: slower lists, faster lookups.
var MockLatency = Latency{
	ListPosts:           800 * time.Millisecond,
	GetPost:             600 * time.Millisecond,
	ListPostsByCategory: 700 * time.Millisecond,
	ListPostsByTag:      700 * time.Millisecond,
	ListCategories:      500 * time.Millisecond,
	ListTags:            500 * time.Millisecond,
	GetSiteInfo:         400 * time.Millisecond,
	GetArchive:          600 * time.Millisecond,
	Search:              500 * time.Millisecond,
}

// LatencyProfile resolves a profile name.
func LatencyProfile(name string) (Latency, error) {
	switch name {
	case LatencyMock:
		return MockLatency, nil
	case LatencyNone, "":
		return Latency{}, nil
	default:
		return Latency{}, fmt.Errorf("query: unknown latency profile %q", name)
	}
}

// SleepFunc blocks for d or until ctx is done, returning ctx.Err() in the
// latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the SleepFunc backed by a real timer.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Delayed wraps a Repository and waits before answering, emulating network
// latency. Waiting stops as soon as the caller's context is done, so an
// abandoned request never holds a goroutine for the full delay.
type Delayed struct {
	next    Repository
	latency Latency
	sleep   SleepFunc
}

// NewDelayed wraps next with the given latency profile. A nil sleep uses Sleep.
func NewDelayed(next Repository, latency Latency, sleep SleepFunc) *Delayed {
	if sleep == nil {
		sleep = Sleep
	}
	return &Delayed{next: next, latency: latency, sleep: sleep}
}

// ListPosts implements Repository.
func (d *Delayed) ListPosts(ctx context.Context) ([]models.Post, error) {
	if err := d.sleep(ctx, d.latency.ListPosts); err != nil {
		return nil, err
	}
	return d.next.ListPosts(ctx)
}

// GetPost implements Repository.
func (d *Delayed) GetPost(ctx context.Context, slug string) (*models.Post, error) {
	if err := d.sleep(ctx, d.latency.GetPost); err != nil {
		return nil, err
	}
	return d.next.GetPost(ctx, slug)
}

// ListPostsByCategory implements Repository.
func (d *Delayed) ListPostsByCategory(ctx context.Context, slug string) ([]models.Post, error) {
	if err := d.sleep(ctx, d.latency.ListPostsByCategory); err != nil {
		return nil, err
	}
	return d.next.ListPostsByCategory(ctx, slug)
}

// ListPostsByTag implements Repository.
func (d *Delayed) ListPostsByTag(ctx context.Context, slug string) ([]models.Post, error) {
	if err := d.sleep(ctx, d.latency.ListPostsByTag); err != nil {
		return nil, err
	}
	return d.next.ListPostsByTag(ctx, slug)
}

// ListCategories implements Repository.
func (d *Delayed) ListCategories(ctx context.Context) ([]models.Category, error) {
	if err := d.sleep(ctx, d.latency.ListCategories); err != nil {
		return nil, err
	}
	return d.next.ListCategories(ctx)
}

// ListTags implements Repository.
func (d *Delayed) ListTags(ctx context.Context) ([]models.Tag, error) {
	if err := d.sleep(ctx, d.latency.ListTags); err != nil {
		return nil, err
	}
	return d.next.ListTags(ctx)
}

// GetSiteInfo implements Repository.
func (d *Delayed) GetSiteInfo(ctx context.Context) (models.SiteInfo, error) {
	if err := d.sleep(ctx, d.latency.GetSiteInfo); err != nil {
		return models.SiteInfo{}, err
	}
	return d.next.GetSiteInfo(ctx)
}

// GetArchive implements Repository.
func (d *Delayed) GetArchive(ctx context.Context) (Archive, error) {
	if err := d.sleep(ctx, d.latency.GetArchive); err != nil {
		return Archive{}, err
	}
	return d.next.GetArchive(ctx)
}

// Search implements Repository.
func (d *Delayed) Search(ctx context.Context, q string) ([]models.Post, error) {
	if err := d.sleep(ctx, d.latency.Search); err != nil {
		return nil, err
	}
	return d.next.Search(ctx, q)
}
