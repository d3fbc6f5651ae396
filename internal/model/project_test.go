package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDeriveMetadata(t *testing.T) {
	p := &Project{Elements: []DesignElement{
		{ID: uuid.New(), Kind: ElementText},
		{ID: uuid.New(), Kind: ElementShape},
	}}
	p.DeriveMetadata()

	assert.Equal(t, 2, p.Metadata.TotalElements)
	assert.True(t, p.Metadata.HasText)
	assert.False(t, p.Metadata.HasImages)
	assert.Equal(t, ComplexitySimple, p.Metadata.Complexity)
}

func TestComplexityBoundaries(t *testing.T) {
	cases := []struct {
		n    int
		want Complexity
	}{
		{0, ComplexitySimple},
		{3, ComplexitySimple},
		{4, ComplexityMedium},
		{8, ComplexityMedium},
		{9, ComplexityComplex},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, complexityFor(tc.n), "n=%d", tc.n)
	}
}

func TestCloneElements_NoAliasing(t *testing.T) {
	src := []DesignElement{{ID: uuid.New(), Kind: ElementText, Style: map[string]string{"color": "red"}}}
	clone := CloneElements(src)

	clone[0].Style["color"] = "blue"
	assert.Equal(t, "red", src[0].Style["color"])

	assert.Nil(t, CloneElements(nil))
}
