package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/polish/internal/adapters/fs"
	"go.trai.ch/polish/internal/adapters/report"
	"go.trai.ch/polish/internal/adapters/telemetry"
	"go.trai.ch/polish/internal/adapters/treesitter"
	"go.trai.ch/polish/internal/app"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports/mocks"
	"go.trai.ch/polish/internal/engine/cache"
	"go.trai.ch/polish/internal/engine/registry"
)

func newComponents(t *testing.T, caches cache.Factory) (*app.Components, *mocks.MockConfigLoader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)

	parser := treesitter.NewParser()
	reg, err := registry.NewWithBuiltins(parser)
	require.NoError(t, err)

	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	return &app.Components{
		Logger:       log,
		ConfigLoader: loader,
		Registry:     reg,
		Parser:       parser,
		Hasher:       fs.NewHasher(),
		Workspace:    mocks.NewMockWorkspace(ctrl),
		PluginLoader: mocks.NewMockPluginLoader(ctrl),
		Caches:       caches,
		Tracers:      telemetry.NewFactory("polish-test"),
		Reporters:    report.NewCatalog(report.Stylish{}, report.JSON{}),
	}, loader, log
}

func TestComponents_Open(t *testing.T) {
	var opened domain.CacheConfig
	caches := func(cfg domain.CacheConfig) (*cache.Cache, error) {
		opened = cfg
		return cache.New(cfg.Capacity, nil)
	}
	c, loader, log := newComponents(t, caches)

	cfg := config(nil)
	loader.EXPECT().Load("/work", "custom.yaml").Return(cfg, nil)
	log.EXPECT().SetVerbose(true)

	engine, err := c.Open(context.Background(), app.OpenOptions{
		Cwd:        "/work",
		ConfigPath: "custom.yaml",
		Override: func(cfg *domain.Config) {
			cfg.Verbose = true
			cfg.Workers = 2
			cfg.Cache.Enabled = false
		},
	})
	require.NoError(t, err)

	got := engine.Config()
	assert.Equal(t, 2, got.Workers)
	assert.Equal(t, root, got.Root)
	assert.False(t, opened.Enabled)
	require.NoError(t, engine.Close(context.Background()))
}

func TestComponents_Open_CacheUnavailable(t *testing.T) {
	caches := func(domain.CacheConfig) (*cache.Cache, error) {
		return nil, domain.ErrStoreCreateFailed
	}
	c, loader, log := newComponents(t, caches)

	loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(config(nil), nil)
	log.EXPECT().SetVerbose(false)
	log.EXPECT().Debug("cache unavailable", gomock.Any())

	engine, err := c.Open(context.Background(), app.OpenOptions{Cwd: "/work"})
	require.NoError(t, err)
	require.NotNil(t, engine)
}

func TestComponents_Open_ConfigError(t *testing.T) {
	c, loader, _ := newComponents(t, nil)
	loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, domain.ErrConfigParseFailed)

	_, err := c.Open(context.Background(), app.OpenOptions{Cwd: "/work"})
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}
