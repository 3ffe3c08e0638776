package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/semoutline/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices and switches", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Exclude = []string{"**/obj/**"}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		clone.Exclude[0] = "changed"
		clone.Extensions = append(clone.Extensions, ".csx")
		*clone.SkipVendored = false

		assert.Equal(t, []string{"**/obj/**"}, original.Exclude)
		assert.Equal(t, []string{".cs"}, original.Extensions)
		assert.True(t, config.Enabled(original.SkipVendored))
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Include = []string{"src/**"}
	original.Jobs = 4

	data, err := original.ToYAML()
	require.NoError(t, err)

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("partial file leaves other fields unset", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte("suffix: .yaml\nskip_vendored: false\n"))
		require.NoError(t, err)
		assert.Equal(t, ".yaml", cfg.Suffix)
		require.NotNil(t, cfg.SkipVendored)
		assert.False(t, *cfg.SkipVendored)
		assert.Nil(t, cfg.Verify)
		assert.Empty(t, cfg.Encoding)
	})

	t.Run("empty and comment-only", func(t *testing.T) {
		t.Parallel()

		for _, data := range []string{"", "   \n", "# nothing here\n"} {
			cfg, err := config.FromYAML([]byte(data))
			require.NoError(t, err)
			assert.Equal(t, &config.Config{}, cfg)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("flavor: gfm\n"))
		require.Error(t, err)
	})
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := config.NewConfig().ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# header\n\nencoding: utf-8\n")
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	for _, full := range []bool{false, true} {
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: full})
		require.NoError(t, err)
		assert.Contains(t, string(data), "# semoutline configuration")

		cfg, err := config.FromYAML(data)
		require.NoError(t, err, "template must parse (full=%v)", full)
		assert.Equal(t, config.DefaultSuffix, cfg.Suffix)
	}
}

func TestColorMode(t *testing.T) {
	t.Parallel()

	assert.True(t, config.ColorAuto.IsValid())
	assert.True(t, config.ColorNever.IsValid())
	assert.False(t, config.ColorMode("sometimes").IsValid())
}
