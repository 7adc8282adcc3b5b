package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hydrant", CategoryHydrant},
		{"Hydrant Hose Reel", CategoryHydrant},
		{"HYDRANT HOSE REEL", CategoryHydrant},
		{"  hydrant  ", CategoryHydrant},
		{"sand-bucket", CategorySandBucket},
		{"fire bucket", CategorySandBucket},
		{"Fire Sand Bucket", CategorySandBucket},
		{"fire-extinguisher", CategoryExtinguisher},
		{"Fire Extinguisher", CategoryExtinguisher},
		{"hose-reel", CategoryHoseReel},
		{"Fire Hose Reel", CategoryHoseReel},
		// Unrecognized types pass through unchanged.
		{"Fire Blanket", "Fire Blanket"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.in))
		})
	}
}

func TestCategoryPriority(t *testing.T) {
	assert.Equal(t, 0, CategoryPriority(CategoryExtinguisher))
	assert.Equal(t, 1, CategoryPriority(CategoryHoseReel))
	assert.Equal(t, 2, CategoryPriority(CategoryHydrant))
	assert.Equal(t, 3, CategoryPriority(CategorySandBucket))
	assert.Equal(t, 4, CategoryPriority("Fire Blanket"))
	assert.Equal(t, 4, CategoryPriority("Smoke Detector"))
}
