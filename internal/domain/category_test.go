package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func TestNewCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		catName  string
		hexColor string
		wantErr  error
	}{
		{name: "valid with color", catName: "Work", hexColor: "#ff8800"},
		{name: "valid without hash prefix", catName: "Home", hexColor: "ff8800"},
		{name: "valid without color", catName: "Errands"},
		{name: "short color code", catName: "Misc", hexColor: "#abc"},
		{name: "empty name", catName: "", wantErr: domain.ErrCategoryNameEmpty},
		{
			name:    "name too long",
			catName: strings.Repeat("n", domain.MaxCategoryNameLength+1),
			wantErr: domain.ErrCategoryNameTooLong,
		},
		{name: "color not hex", catName: "Work", hexColor: "red", wantErr: domain.ErrInvalidHexColor},
		{name: "color too long", catName: "Work", hexColor: "#ff88001", wantErr: domain.ErrInvalidHexColor},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			category, err := domain.NewCategory(tc.catName, tc.hexColor)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.catName, category.Name)
			assert.Equal(t, tc.hexColor, category.HexColor)
		})
	}
}

func TestCategoryLoadBucket(t *testing.T) {
	t.Parallel()

	category, err := domain.NewCategory("Work", "")
	require.NoError(t, err)

	assert.Equal(t, domain.LoadBucketNone, category.LoadBucket())

	category.TaskCount = 2
	assert.Equal(t, domain.LoadBucketFew, category.LoadBucket())

	category.TaskCount = 9
	assert.Equal(t, domain.LoadBucketTooMany, category.LoadBucket())
}

func TestNewTag(t *testing.T) {
	t.Parallel()

	tag, err := domain.NewTag("urgent")
	require.NoError(t, err)
	assert.Equal(t, "urgent", tag.Label)
	assert.Equal(t, domain.LoadBucketNone, tag.LoadBucket())

	_, err = domain.NewTag("")
	assert.ErrorIs(t, err, domain.ErrTagLabelEmpty)

	_, err = domain.NewTag(strings.Repeat("t", 101))
	assert.ErrorIs(t, err, domain.ErrTagLabelTooLong)
}
