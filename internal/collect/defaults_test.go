package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeDefaults(t *testing.T) {
	t.Run("NilYieldsDefaults", func(t *testing.T) {
		got := MergeDefaults(nil)
		assert.Equal(t, InitialValues{
			CollectType: Ptr(CollectTypePort),
			Timeout:     Ptr(3),
			Step:        Ptr(10),
		}, got)
	})

	t.Run("CallerValuesWin", func(t *testing.T) {
		in := &InitialValues{Timeout: Ptr(5)}
		got := MergeDefaults(in)

		assert.Equal(t, InitialValues{
			CollectType: Ptr(CollectTypePort),
			Timeout:     Ptr(5),
			Step:        Ptr(10),
		}, got)
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		in := &InitialValues{Timeout: Ptr(5)}
		got := MergeDefaults(in)

		assert.Equal(t, &InitialValues{Timeout: Ptr(5)}, in)

		*got.Timeout = 99
		assert.Equal(t, 5, *in.Timeout, "result must not alias the input")
	})

	t.Run("DoesNotAliasDefaults", func(t *testing.T) {
		got := MergeDefaults(nil)
		*got.Step = 600
		*got.CollectType = "proc"

		assert.Equal(t, 10, *DefaultFormData.Step)
		assert.Equal(t, CollectTypePort, *DefaultFormData.CollectType)
	})

	t.Run("AllFieldsOverlay", func(t *testing.T) {
		in := &InitialValues{
			CollectType: Ptr(CollectType("port")),
			Name:        Ptr("sshd"),
			NID:         Ptr(int64(12)),
			Port:        Ptr(22),
			Timeout:     Ptr(1),
			Step:        Ptr(60),
			Comment:     Ptr("bastion"),
			Tags:        Ptr("service=ssh,env=prod"),
		}
		got := MergeDefaults(in)
		assert.Equal(t, *in, got)
	})

	t.Run("ZeroValuesStillWin", func(t *testing.T) {
		got := MergeDefaults(&InitialValues{Timeout: Ptr(0), Comment: Ptr("")})
		require.NotNil(t, got.Timeout)
		assert.Equal(t, 0, *got.Timeout)
		require.NotNil(t, got.Comment)
		assert.Equal(t, "", *got.Comment)
	})
}

func TestWithDefaultsAndMergeOnto(t *testing.T) {
	base := WithDefaults(5, 30)
	assert.Equal(t, 5, *base.Timeout)
	assert.Equal(t, 30, *base.Step)

	kept := WithDefaults(0, -1)
	assert.Equal(t, Defaults(), kept)

	got := MergeOnto(base, &InitialValues{Step: Ptr(60)})
	assert.Equal(t, 5, *got.Timeout)
	assert.Equal(t, 60, *got.Step)
	assert.Equal(t, 30, *base.Step)
}
