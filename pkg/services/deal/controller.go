package deal

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/de-tools/deal-atlas/pkg/services/analysis"
	"github.com/de-tools/deal-atlas/pkg/services/presenter"
	"github.com/de-tools/deal-atlas/pkg/services/registry"
	"github.com/de-tools/deal-atlas/pkg/services/schema"
	"github.com/rs/zerolog"
)

// ErrNoProfiles is returned when a profile is requested but no profile
// registry was configured.
var ErrNoProfiles = errors.New("no assumption profiles configured")

// Options select the assumptions and the view of one analysis.
type Options struct {
	Profile string
	Debug   bool
}

// Controller runs deal analyses. Every call owns its input and derived
// fields, so calls may run concurrently.
type Controller interface {
	AnalyzeFile(ctx context.Context, path string, opts Options) (*domain.Report, error)
	AnalyzeDocument(ctx context.Context, source string, r io.Reader, opts Options) (*domain.Report, error)
	ListProfiles(ctx context.Context) ([]string, error)
}

type controller struct {
	profiles registry.ProfileRegistry
}

// NewController creates a controller. profiles may be nil when no profile
// file is available; only the built-in defaults apply then.
func NewController(profiles registry.ProfileRegistry) Controller {
	return &controller{profiles: profiles}
}

func (c *controller) AnalyzeFile(ctx context.Context, path string, opts Options) (*domain.Report, error) {
	defaults, err := c.defaults(opts.Profile)
	if err != nil {
		return nil, err
	}

	in, err := schema.Load(path, defaults)
	if err != nil {
		return nil, err
	}
	return c.analyze(ctx, in, opts)
}

func (c *controller) AnalyzeDocument(
	ctx context.Context,
	source string,
	r io.Reader,
	opts Options,
) (*domain.Report, error) {
	defaults, err := c.defaults(opts.Profile)
	if err != nil {
		return nil, err
	}

	in, err := schema.Decode(source, r, defaults)
	if err != nil {
		return nil, err
	}
	return c.analyze(ctx, in, opts)
}

func (c *controller) ListProfiles(_ context.Context) ([]string, error) {
	if c.profiles == nil {
		return []string{}, nil
	}
	return c.profiles.GetProfiles()
}

func (c *controller) analyze(ctx context.Context, in *schema.Input, opts Options) (*domain.Report, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("source", in.Source()).
		Str("profile", opts.Profile).
		Msg("analyzing deal")

	result, err := analysis.Evaluate(in)
	if err != nil {
		logger.Error().Err(err).Str("source", in.Source()).Msg("analysis failed")
		return nil, err
	}

	logger.Debug().
		Str("source", in.Source()).
		Int("categories", len(result.Categories)).
		Msg("analysis completed")

	return presenter.Present(result, presenter.Options{Debug: opts.Debug}), nil
}

func (c *controller) defaults(profile string) (schema.Defaults, error) {
	builtin := schema.BuiltinDefaults()
	if profile == "" {
		return builtin, nil
	}
	if c.profiles == nil {
		return nil, fmt.Errorf("failed to select profile %s: %w", profile, ErrNoProfiles)
	}

	overrides, err := c.profiles.GetDefaults(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to select profile: %w", err)
	}
	return builtin.Merge(overrides), nil
}
