package service

import (
	"context"
	"errors"

	"cpprofile-backend/internal/components/assert"
	"cpprofile-backend/internal/components/telemetry"
	"cpprofile-backend/internal/profile"
	"cpprofile-backend/internal/scrapers/codechef"
	"cpprofile-backend/internal/scrapers/codeforces"
	"cpprofile-backend/internal/scrapers/leetcode"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

const (
	report_service_profile   = "service.profile"
	report_service_aggregate = "service.aggregate"
)

var tracer = otel.Tracer("cpprofile.internal.service")

var ErrNoPlatforms = errors.New("no platform username given")

type CodeChefAPI interface {
	Profile(ctx context.Context, username string) (codechef.Profile, error)
}

type LeetCodeAPI interface {
	Profile(ctx context.Context, username string) (leetcode.Profile, error)
}

type CodeforcesAPI interface {
	Profile(ctx context.Context, handle string) (codeforces.Profile, error)
}

// Usernames names the account to fetch on every platform, an empty username skips that
// platform.
type Usernames struct {
	CodeChef   string
	LeetCode   string
	Codeforces string
}

func (u Usernames) count() int {
	n := 0
	for _, name := range []string{u.CodeChef, u.LeetCode, u.Codeforces} {
		if name != "" {
			n++
		}
	}
	return n
}

// Aggregate holds one record per requested platform, a nil field means the platform was not
// requested.
type Aggregate struct {
	CodeChef   *codechef.Profile   `json:"codechef,omitempty"`
	LeetCode   *leetcode.Profile   `json:"leetcode,omitempty"`
	Codeforces *codeforces.Profile `json:"codeforces,omitempty"`
}

type Service struct {
	codechef   CodeChefAPI
	leetcode   LeetCodeAPI
	codeforces CodeforcesAPI
	tel        telemetry.API
}

func NewService(
	codechef CodeChefAPI,
	leetcode LeetCodeAPI,
	codeforces CodeforcesAPI,
	tel telemetry.API,
) Service {
	assert.NotNil(codechef, "codechef api")
	assert.NotNil(leetcode, "leetcode api")
	assert.NotNil(codeforces, "codeforces api")
	assert.NotNil(tel, "telemetry")

	return Service{
		codechef:   codechef,
		leetcode:   leetcode,
		codeforces: codeforces,
		tel:        telemetry.NewScopedAPI("service", tel),
	}
}

func (s Service) CodeChef(ctx context.Context, username string) (codechef.Profile, error) {
	s.tel.ReportDebug(report_service_profile, profile.CodeChef, username)
	return s.codechef.Profile(ctx, username)
}

func (s Service) LeetCode(ctx context.Context, username string) (leetcode.Profile, error) {
	s.tel.ReportDebug(report_service_profile, profile.LeetCode, username)
	return s.leetcode.Profile(ctx, username)
}

func (s Service) Codeforces(ctx context.Context, handle string) (codeforces.Profile, error) {
	s.tel.ReportDebug(report_service_profile, profile.Codeforces, handle)
	return s.codeforces.Profile(ctx, handle)
}

// Aggregate fetches every platform in usernames concurrently. It returns an Aggregate only
// if all of them succeed, otherwise the first error observed is returned. Extractions that
// are still running when another one fails are left to finish on their own.
func (s Service) Aggregate(ctx context.Context, usernames Usernames) (Aggregate, error) {
	if usernames.count() == 0 {
		return Aggregate{}, ErrNoPlatforms
	}

	ctx, span := tracer.Start(ctx, "Aggregate")
	defer span.End()
	span.SetAttributes(
		attribute.String("codechef", usernames.CodeChef),
		attribute.String("leetcode", usernames.LeetCode),
		attribute.String("codeforces", usernames.Codeforces),
	)

	// each goroutine writes to its own variable, Wait orders the writes before the reads
	var (
		codechefProfile   codechef.Profile
		leetcodeProfile   leetcode.Profile
		codeforcesProfile codeforces.Profile
	)

	var group errgroup.Group
	if usernames.CodeChef != "" {
		group.Go(func() error {
			var err error
			codechefProfile, err = s.codechef.Profile(ctx, usernames.CodeChef)
			return err
		})
	}
	if usernames.LeetCode != "" {
		group.Go(func() error {
			var err error
			leetcodeProfile, err = s.leetcode.Profile(ctx, usernames.LeetCode)
			return err
		})
	}
	if usernames.Codeforces != "" {
		group.Go(func() error {
			var err error
			codeforcesProfile, err = s.codeforces.Profile(ctx, usernames.Codeforces)
			return err
		})
	}

	err := group.Wait()
	if err != nil {
		s.tel.ReportWarning(report_service_aggregate, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregate failed")
		return Aggregate{}, err
	}

	result := Aggregate{}
	if usernames.CodeChef != "" {
		result.CodeChef = &codechefProfile
	}
	if usernames.LeetCode != "" {
		result.LeetCode = &leetcodeProfile
	}
	if usernames.Codeforces != "" {
		result.Codeforces = &codeforcesProfile
	}
	return result, nil
}
