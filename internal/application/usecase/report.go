package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/diillson/aws-which-region/internal/domain/entity"
	"github.com/diillson/aws-which-region/internal/shared/types"
	"github.com/diillson/aws-which-region/pkg/console"
)

// quickRegionNames is the quick-mode shortlist, queried in this order.
var quickRegionNames = []string{
	"us-east-1",
	"us-east-2",
	"us-west-1",
	"us-west-2",
	"eu-west-1",
	"eu-west-2",
	"eu-central-1",
}

// unavailable is shown in place of counts for a region that could not be queried.
const unavailable = "n/a"

// ResourceCounter counts resources of one kind in one region.
type ResourceCounter interface {
	CountResources(ctx context.Context, region string, kind entity.ResourceKind) (int, error)
}

// RegionLister enumerates the regions enabled for the account.
type RegionLister interface {
	GetAllRegions(ctx context.Context) ([]entity.RegionDescriptor, error)
}

// QuickRegions returns the fixed quick-mode shortlist.
func QuickRegions() []entity.RegionDescriptor {
	regions := make([]entity.RegionDescriptor, 0, len(quickRegionNames))
	for _, name := range quickRegionNames {
		regions = append(regions, entity.RegionDescriptor{
			Name:        name,
			Endpoint:    fmt.Sprintf("ec2.%s.amazonaws.com", name),
			OptInStatus: entity.OptInNotRequired,
		})
	}
	return regions
}

// ResolveRegions returns the quick shortlist without touching the provider,
// or every region reported by lister in its original order.
func ResolveRegions(ctx context.Context, lister RegionLister, quick bool) ([]entity.RegionDescriptor, error) {
	if quick {
		return QuickRegions(), nil
	}
	regions, err := lister.GetAllRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list AWS regions: %w", err)
	}
	return regions, nil
}

// CollectSummaries queries every kind for every region, one call at a time.
// The first error aborts collection unless opts.ContinueOnError is set, in
// which case the region gets a failed placeholder summary. onRegion, when
// non-nil, is called after each region.
func CollectSummaries(
	ctx context.Context,
	log logr.Logger,
	regions []entity.RegionDescriptor,
	counter ResourceCounter,
	opts types.ReportOptions,
	onRegion func(entity.RegionSummary),
) ([]entity.RegionSummary, error) {
	summaries := make([]entity.RegionSummary, 0, len(regions))

	for _, region := range regions {
		summary, err := summarizeRegion(ctx, log, region.Name, counter, opts.CallTimeout)
		if err != nil {
			if !opts.ContinueOnError {
				return nil, err
			}
			log.Error(err, "region query failed, recording placeholder", "region", region.Name)
			summary = entity.NewFailedSummary(region.Name, err)
		}
		summaries = append(summaries, summary)
		if onRegion != nil {
			onRegion(summary)
		}
	}
	return summaries, nil
}

func summarizeRegion(ctx context.Context, log logr.Logger, region string, counter ResourceCounter, timeout time.Duration) (entity.RegionSummary, error) {
	counts := make(map[entity.ResourceKind]int, len(entity.ResourceKinds()))
	for _, kind := range entity.ResourceKinds() {
		start := time.Now()
		n, err := countWithTimeout(ctx, counter, region, kind, timeout)
		if err != nil {
			return entity.RegionSummary{}, err
		}
		log.V(1).Info("counted resources", "region", region, "kind", kind.String(), "count", n, "duration", time.Since(start))
		counts[kind] = n
	}
	return entity.NewRegionSummary(region, counts), nil
}

func countWithTimeout(ctx context.Context, counter ResourceCounter, region string, kind entity.ResourceKind, timeout time.Duration) (int, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return counter.CountResources(ctx, region, kind)
}

// FilterSummaries applies the inclusion policy: debug and quick mode keep
// every row, otherwise only regions with score > 0 remain. Failed placeholder
// rows are always kept.
func FilterSummaries(summaries []entity.RegionSummary, opts types.ReportOptions) []entity.RegionSummary {
	if opts.Debug || opts.Quick {
		return append([]entity.RegionSummary(nil), summaries...)
	}

	included := make([]entity.RegionSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.Score > 0 || s.Failed() {
			included = append(included, s)
		}
	}
	return included
}

// SortSummaries returns a copy ordered by score, highest first. Equal scores
// keep their input order.
func SortSummaries(summaries []entity.RegionSummary) []entity.RegionSummary {
	sorted := append([]entity.RegionSummary(nil), summaries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}

// RenderReport fills table with the Region/EC2/ELB/RDS layout. The score is
// used for ordering only and is not printed.
func RenderReport(table types.TableInterface, summaries []entity.RegionSummary) string {
	table.AddColumn("Region", console.Width(15), console.AlignLeft)
	table.AddColumn("EC2", console.Width(5))
	table.AddColumn("ELB", console.Width(5))
	table.AddColumn("RDS", console.Width(5))

	for _, s := range summaries {
		if s.Failed() {
			table.AddRow(s.Region, unavailable, unavailable, unavailable)
			continue
		}
		table.AddRow(
			s.Region,
			s.Count(entity.ComputeInstance),
			s.Count(entity.LoadBalancer),
			s.Count(entity.ManagedDatabase),
		)
	}
	return table.Render()
}

func joinRegionNames(regions []entity.RegionDescriptor) string {
	return strings.Join(entity.RegionNames(regions), ", ")
}
