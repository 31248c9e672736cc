package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestDeviceProfileValueUnset(t *testing.T) {
	profile := &DeviceProfile{}

	// Every field of an empty profile reads as unset.
	for _, f := range Fields {
		_, ok := profile.Value(f)
		assert.False(t, ok, "field %s should be unset on an empty profile", f)
		assert.False(t, profile.IsSet(f))
	}
}

func TestDeviceProfileValueKinds(t *testing.T) {
	profile := &DeviceProfile{
		IsActive:     boolPtr(false),
		Invasiveness: strPtr(InvasivenessSurgical),
		ContactSites: []string{SiteCentralNervous},
	}

	v, ok := profile.Value(FieldIsActive)
	require.True(t, ok, "an explicit false answer is still an answer")
	assert.Equal(t, KindBool, v.Kind)
	assert.False(t, v.Bool)

	v, ok = profile.Value(FieldInvasiveness)
	require.True(t, ok)
	assert.Equal(t, KindEnum, v.Kind)
	assert.Equal(t, InvasivenessSurgical, v.Str)

	v, ok = profile.Value(FieldContactSites)
	require.True(t, ok)
	assert.Equal(t, KindSet, v.Kind)
	assert.Equal(t, []string{SiteCentralNervous}, v.Set)
}

func TestDeviceProfileEmptyCollectionsAreUnset(t *testing.T) {
	profile := &DeviceProfile{
		ContactSites:             []string{},
		Functions:                []string{},
		SoftwarePurposes:         []string{},
		OtherFunctionDescription: strPtr(""),
	}

	assert.False(t, profile.IsSet(FieldContactSites), "empty site list is unset")
	assert.False(t, profile.IsSet(FieldFunctions), "empty function list is unset")
	assert.False(t, profile.IsSet(FieldSoftwarePurposes), "empty purpose list is unset")
	assert.False(t, profile.IsSet(FieldOtherFunctionDescription), "blank text is unset")
}

func TestFieldLabels(t *testing.T) {
	for _, f := range Fields {
		assert.NotEmpty(t, f.Label(), "field %s needs a user-facing label", f)
		assert.True(t, f.IsValid())
	}

	unknown := Field("unknown")
	assert.False(t, unknown.IsValid())
	assert.Equal(t, "unknown", unknown.Label(), "unknown fields fall back to their identifier")
}
