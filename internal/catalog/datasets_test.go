package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasets(t *testing.T) {
	t.Parallel()

	sample, err := SampleAircraft()
	require.NoError(t, err)
	assert.Len(t, sample, 10)

	predefined, err := PredefinedAircraft()
	require.NoError(t, err)
	assert.Len(t, predefined, 38)
	assert.Equal(t, "Wright Flyer", predefined[0].Name)

	for _, in := range append(sample, predefined...) {
		assert.NoError(t, in.Validate(), in.Name)
	}
}

func TestBirdRecords(t *testing.T) {
	t.Parallel()

	birds, err := BirdRecords()
	require.NoError(t, err)
	require.Len(t, birds, 14)

	tern := birds[0]
	assert.Equal(t, "Ave - Common tern", tern.Name)
	assert.Equal(t, "Natureza", *tern.Manufacturer)
	assert.InDelta(t, 0.117, *tern.MTOW, 1e-9)
	assert.InDelta(t, 28.1, *tern.CruiseSpeed, 1e-9)
	assert.Equal(t, TypeBird, *tern.CategoryType)
	assert.Equal(t, "muito_leve", *tern.CategorySize)
	assert.NotEmpty(t, *tern.ImageURL)
}

func TestBird_DefaultImage(t *testing.T) {
	t.Parallel()

	in := Bird{Name: "Petrel", WeightNewtons: 9.8, SpeedMPS: 10}.AircraftInput()
	assert.Equal(t, defaultBirdImage, *in.ImageURL)
	assert.InDelta(t, 1.0, *in.MTOW, 1e-9)
	assert.InDelta(t, 36.0, *in.CruiseSpeed, 1e-9)
}
