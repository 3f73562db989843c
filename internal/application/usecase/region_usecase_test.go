package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/diillson/aws-which-region/internal/domain/entity"
	"github.com/diillson/aws-which-region/internal/shared/types"
	"github.com/diillson/aws-which-region/pkg/console"
)

var _ = Describe("QuickRegions", func() {
	It("returns the seven fixed regions in order", func() {
		regions := QuickRegions()
		Expect(entity.RegionNames(regions)).To(Equal([]string{
			"us-east-1", "us-east-2", "us-west-1", "us-west-2",
			"eu-west-1", "eu-west-2", "eu-central-1",
		}))
		for _, r := range regions {
			Expect(r.OptInStatus).To(Equal(entity.OptInNotRequired))
			Expect(r.Endpoint).To(Equal("ec2." + r.Name + ".amazonaws.com"))
		}
	})
})

var _ = Describe("ResolveRegions", func() {
	var repo *fakeRepository

	BeforeEach(func() {
		repo = newFakeRepository()
		repo.regions = []entity.RegionDescriptor{{Name: "sa-east-1"}, {Name: "ap-south-1"}}
	})

	It("never calls the provider in quick mode", func() {
		regions, err := ResolveRegions(context.Background(), repo, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(regions).To(HaveLen(7))
		Expect(repo.listCalls).To(BeZero())
	})

	It("returns the provider list untouched in full mode", func() {
		regions, err := ResolveRegions(context.Background(), repo, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(entity.RegionNames(regions)).To(Equal([]string{"sa-east-1", "ap-south-1"}))
		Expect(repo.listCalls).To(Equal(1))
	})

	It("surfaces a listing failure", func() {
		repo.regionsErr = types.ErrCredentials
		_, err := ResolveRegions(context.Background(), repo, false)
		Expect(err).To(MatchError(types.ErrCredentials))
	})
})

var _ = Describe("CollectSummaries", func() {
	var (
		repo    *fakeRepository
		regions []entity.RegionDescriptor
	)

	BeforeEach(func() {
		repo = newFakeRepository().
			set("us-east-1", 3, 2, 1).
			set("eu-west-1", 0, 0, 0)
		regions = []entity.RegionDescriptor{{Name: "us-east-1"}, {Name: "eu-west-1"}}
	})

	It("queries each kind of each region sequentially", func() {
		summaries, err := CollectSummaries(context.Background(), logr.Discard(), regions, repo, types.ReportOptions{}, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(repo.calls).To(Equal([]countCall{
			{"us-east-1", entity.ComputeInstance},
			{"us-east-1", entity.ManagedDatabase},
			{"us-east-1", entity.LoadBalancer},
			{"eu-west-1", entity.ComputeInstance},
			{"eu-west-1", entity.ManagedDatabase},
			{"eu-west-1", entity.LoadBalancer},
		}))
		Expect(regionNames(summaries)).To(Equal([]string{"us-east-1", "eu-west-1"}))
		Expect(summaries[0].Score).To(Equal(15))
		Expect(summaries[1].Score).To(BeZero())
	})

	It("calls onRegion once per region", func() {
		var seen []string
		_, err := CollectSummaries(context.Background(), logr.Discard(), regions, repo, types.ReportOptions{}, func(s entity.RegionSummary) {
			seen = append(seen, s.Region)
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal([]string{"us-east-1", "eu-west-1"}))
	})

	It("aborts on the first provider error", func() {
		repo.failures["us-east-1"] = errThrottled

		summaries, err := CollectSummaries(context.Background(), logr.Discard(), regions, repo, types.ReportOptions{}, nil)
		Expect(err).To(MatchError(types.ErrRegionQuery))
		Expect(err).To(MatchError(errThrottled))
		Expect(summaries).To(BeNil())
		Expect(repo.calls).To(HaveLen(1), "nothing is queried after the failure")
	})

	It("records a placeholder and keeps going when asked to", func() {
		repo.failures["us-east-1"] = errThrottled

		summaries, err := CollectSummaries(context.Background(), logr.Discard(), regions, repo,
			types.ReportOptions{ContinueOnError: true}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(summaries).To(HaveLen(2))
		Expect(summaries[0].Failed()).To(BeTrue())
		Expect(summaries[0].Err).To(MatchError(errThrottled))
		Expect(summaries[1].Failed()).To(BeFalse())
	})

	It("bounds each call with the configured timeout", func() {
		counter := &deadlineRecorder{}
		_, err := CollectSummaries(context.Background(), logr.Discard(), regions[:1], counter,
			types.ReportOptions{CallTimeout: time.Minute}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(counter.deadlines).To(HaveLen(3))
		for _, hasDeadline := range counter.deadlines {
			Expect(hasDeadline).To(BeTrue())
		}
	})

	It("leaves the context alone without a timeout", func() {
		counter := &deadlineRecorder{}
		_, err := CollectSummaries(context.Background(), logr.Discard(), regions[:1], counter, types.ReportOptions{}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(counter.deadlines).To(Equal([]bool{false, false, false}))
	})
})

type deadlineRecorder struct {
	deadlines []bool
}

func (d *deadlineRecorder) CountResources(ctx context.Context, _ string, _ entity.ResourceKind) (int, error) {
	_, ok := ctx.Deadline()
	d.deadlines = append(d.deadlines, ok)
	return 0, nil
}

var _ = Describe("FilterSummaries", func() {
	summaries := []entity.RegionSummary{
		summary("us-east-1", 7),
		summary("eu-west-1", 0),
		summary("us-west-2", 1),
		entity.NewFailedSummary("ap-east-1", errThrottled),
	}

	DescribeTable("inclusion policy",
		func(opts types.ReportOptions, want []string) {
			Expect(regionNames(FilterSummaries(summaries, opts))).To(Equal(want))
		},
		Entry("full mode drops zero scores", types.ReportOptions{},
			[]string{"us-east-1", "us-west-2", "ap-east-1"}),
		Entry("quick mode keeps everything", types.ReportOptions{Quick: true},
			[]string{"us-east-1", "eu-west-1", "us-west-2", "ap-east-1"}),
		Entry("debug keeps everything in full mode", types.ReportOptions{Debug: true},
			[]string{"us-east-1", "eu-west-1", "us-west-2", "ap-east-1"}),
		Entry("debug with quick keeps everything", types.ReportOptions{Debug: true, Quick: true},
			[]string{"us-east-1", "eu-west-1", "us-west-2", "ap-east-1"}),
	)

	It("does not modify its input", func() {
		_ = FilterSummaries(summaries, types.ReportOptions{})
		Expect(summaries).To(HaveLen(4))
	})
})

var _ = Describe("SortSummaries", func() {
	It("orders by score descending and keeps ties in input order", func() {
		in := []entity.RegionSummary{summary("A", 10), summary("B", 30), summary("C", 10)}
		Expect(regionNames(SortSummaries(in))).To(Equal([]string{"B", "A", "C"}))
		Expect(regionNames(in)).To(Equal([]string{"A", "B", "C"}), "input is untouched")
	})

	It("handles an empty list", func() {
		Expect(SortSummaries(nil)).To(BeEmpty())
	})
})

var _ = Describe("RenderReport", func() {
	It("prints Region, EC2, ELB and RDS in fixed-width columns without the score", func() {
		out := RenderReport(console.NewTable(), []entity.RegionSummary{
			entity.NewRegionSummary("eu-central-1", map[entity.ResourceKind]int{
				entity.ComputeInstance: 12, entity.LoadBalancer: 3, entity.ManagedDatabase: 4,
			}),
		})
		Expect(out).To(Equal("" +
			"Region           EC2  ELB  RDS\n" +
			"eu-central-1      12    3    4\n"))
		Expect(out).NotTo(ContainSubstring("38"))
	})

	It("shows n/a for regions that could not be queried", func() {
		out := RenderReport(console.NewTable(), []entity.RegionSummary{
			entity.NewFailedSummary("ap-east-1", errThrottled),
		})
		Expect(out).To(HaveSuffix("ap-east-1        n/a  n/a  n/a\n"))
	})
})

var _ = Describe("RegionUseCase.RunReport", func() {
	var (
		repo      *fakeRepository
		connector *fakeConnector
		out       *fakeConsole
		uc        *RegionUseCase
	)

	BeforeEach(func() {
		repo = newFakeRepository()
		connector = &fakeConnector{repo: repo}
		out = &fakeConsole{}
		uc = NewRegionUseCase(connector, out, logr.Discard())
	})

	It("ranks quick-mode regions and keeps zero-score rows", func() {
		repo.set("eu-west-1", 0, 0, 0).set("us-east-1", 1, 1, 0)

		err := uc.RunReport(context.Background(), &types.CLIArgs{Quick: true, Profile: "audit"})
		Expect(err).NotTo(HaveOccurred())

		lines := strings.Split(strings.TrimSuffix(out.out.String(), "\n"), "\n")
		Expect(lines).To(HaveLen(8))
		Expect(lines[0]).To(Equal("Region           EC2  ELB  RDS"))
		Expect(lines[1]).To(Equal("us-east-1          1    0    1"))
		Expect(out.out.String()).To(ContainSubstring("eu-west-1          0    0    0\n"))

		Expect(connector.session.Profile).To(Equal("audit"))
		Expect(repo.listCalls).To(BeZero())
		Expect(repo.calls).To(HaveLen(21))
		Expect(out.increments).To(Equal(7))
		Expect(out.infos).To(ContainElement("Quick mode, querying only the following regions:"))
		Expect(out.infos).To(ContainElement("us-east-1, us-east-2, us-west-1, us-west-2, eu-west-1, eu-west-2, eu-central-1."))
	})

	It("drops zero-score regions in full mode", func() {
		repo.regions = []entity.RegionDescriptor{{Name: "sa-east-1"}, {Name: "eu-west-3"}, {Name: "ap-south-1"}}
		repo.set("sa-east-1", 0, 0, 0).set("eu-west-3", 2, 0, 0).set("ap-south-1", 0, 1, 0)

		err := uc.RunReport(context.Background(), &types.CLIArgs{})
		Expect(err).NotTo(HaveOccurred())

		Expect(out.out.String()).To(Equal("" +
			"Region           EC2  ELB  RDS\n" +
			"ap-south-1         0    0    1\n" +
			"eu-west-3          2    0    0\n"))
		Expect(out.infos).To(ContainElement("Found 3 AWS regions."))
	})

	It("shows zero-score regions in full mode with debug", func() {
		repo.regions = []entity.RegionDescriptor{{Name: "sa-east-1"}}

		err := uc.RunReport(context.Background(), &types.CLIArgs{Debug: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.out.String()).To(ContainSubstring("sa-east-1          0    0    0\n"))
	})

	It("prints nothing when authentication fails", func() {
		connector.err = types.ErrCredentials

		err := uc.RunReport(context.Background(), &types.CLIArgs{Quick: true})
		Expect(err).To(MatchError(types.ErrCredentials))
		Expect(out.out.String()).To(BeEmpty())
		Expect(out.infos).To(BeEmpty())
		Expect(repo.calls).To(BeEmpty())
	})

	It("runs the connected hook only after a successful Connect", func() {
		hooked := 0
		uc.SetOnConnected(func() {
			Expect(out.infos).To(BeEmpty(), "hook runs before any region output")
			hooked++
		})

		connector.err = types.ErrCredentials
		Expect(uc.RunReport(context.Background(), &types.CLIArgs{Quick: true})).To(MatchError(types.ErrCredentials))
		Expect(hooked).To(BeZero())

		connector.err = nil
		Expect(uc.RunReport(context.Background(), &types.CLIArgs{Quick: true})).To(Succeed())
		Expect(hooked).To(Equal(1))
	})

	It("prints no partial table when a region fails", func() {
		repo.set("us-east-1", 5, 5, 5)
		repo.failures["us-west-1"] = errThrottled

		err := uc.RunReport(context.Background(), &types.CLIArgs{Quick: true})
		Expect(err).To(MatchError(errThrottled))
		Expect(out.out.String()).To(BeEmpty())
	})

	It("warns and renders a placeholder row with continue-on-error", func() {
		repo.failures["us-west-1"] = errThrottled

		err := uc.RunReport(context.Background(), &types.CLIArgs{Quick: true, ContinueOnError: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.out.String()).To(ContainSubstring("us-west-1        n/a  n/a  n/a\n"))
		Expect(out.warnings).To(HaveLen(1))
		Expect(out.warnings[0]).To(ContainSubstring("us-west-1"))
	})
})
