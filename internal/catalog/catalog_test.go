package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `---
products:
  - name: Mechanical Keyboard
    description: Hot-swappable 75% board
    category: peripherals
    price: 129.99
    originalPrice: 149.99
    stock: 42
    sku: KB-75-001
    supplier: keebco
    images:
      - /img/kb-front.jpg
    specifications:
      layout: ANSI
      switches: tactile
    features:
      - hot-swap
      - rgb
    rating: 4.6
    reviews: 213
  - name: Desk Mat
    description: 900x400 cloth mat
    price: 19.5
    stock: 100
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoaderLoad(t *testing.T) {
	file, err := NewLoader(writeSample(t, sampleYAML)).Load()
	require.NoError(t, err)
	require.Len(t, file.Products, 2)

	kb := file.Products[0]
	assert.Equal(t, "Mechanical Keyboard", kb.Name)
	assert.Equal(t, 129.99, kb.Price)
	assert.Equal(t, "ANSI", kb.Specifications["layout"])
	assert.Equal(t, int64(213), kb.Reviews)
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := NewLoader("/nonexistent/products.yaml").Load()
	assert.Error(t, err)
}

func TestLoaderBadYAML(t *testing.T) {
	_, err := NewLoader(writeSample(t, "products: [unclosed")).Load()
	assert.Error(t, err)
}

func TestMapperMap(t *testing.T) {
	file, err := NewLoader(writeSample(t, sampleYAML)).Load()
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	products, err := NewMapper().Map(file, now)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "KB-75-001", products[0].SKU)
	assert.Equal(t, now, products[0].CreatedAt)

	// Entries without a SKU get a generated one.
	assert.NotEmpty(t, products[1].SKU)
	assert.NotEqual(t, products[0].SKU, products[1].SKU)
}

func TestMapperRejectsInvalidEntries(t *testing.T) {
	now := time.Now()

	_, err := NewMapper().Map(&File{Products: []Entry{{Price: 10}}}, now)
	assert.ErrorContains(t, err, "name is required")

	_, err = NewMapper().Map(&File{Products: []Entry{{Name: "bare"}}}, now)
	assert.ErrorContains(t, err, "description is required")

	_, err = NewMapper().Map(&File{Products: []Entry{{Name: "broken", Description: "d", Price: -1}}}, now)
	assert.ErrorContains(t, err, "price cannot be negative")
}

func TestMapperAllowsFreeProducts(t *testing.T) {
	products, err := NewMapper().Map(&File{Products: []Entry{
		{Name: "sticker", Description: "conference swag", Price: 0},
	}}, time.Now())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 0.0, products[0].Price)
}
