package tags_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/atelier-api/internal/domain/tags"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name     string
		specs    []tags.TaggedSpec
		conflict bool
		distinct int
	}{
		{"vacío", nil, false, 0},
		{"uno solo", []tags.TaggedSpec{{"s1", "A"}}, false, 1},
		{"mismo producto", []tags.TaggedSpec{{"s1", "A"}, {"s2", "A"}, {"s3", "A"}}, false, 1},
		{"productos distintos", []tags.TaggedSpec{{"s1", "A"}, {"s2", "B"}}, true, 2},
		{"mezcla", []tags.TaggedSpec{{"s1", "A"}, {"s2", "A"}, {"s3", "C"}}, true, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conflict, distinct := tags.Detect(tc.specs)
			assert.Equal(t, tc.conflict, conflict)
			assert.Equal(t, tc.distinct, distinct)
		})
	}
}

func TestAffected(t *testing.T) {
	assert.Equal(t, []string{"F-12"}, tags.Affected("F-12", "F-12"))
	assert.Equal(t, []string{"F-13", "F-12"}, tags.Affected("F-12", "F-13"))
	assert.Equal(t, []string{"F-12"}, tags.Affected("F-12", ""))
	assert.Equal(t, []string{"F-12"}, tags.Affected("", "F-12"))
	assert.Empty(t, tags.Affected("", ""))
	// La comparación es exacta: "f-12" es otro tag.
	assert.Equal(t, []string{"f-12", "F-12"}, tags.Affected("F-12", "f-12"))
}
