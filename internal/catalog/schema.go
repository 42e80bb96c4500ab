package catalog

// Entry is a single product in products.yaml.
type Entry struct {
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description"`
	Category       string            `yaml:"category"`
	Price          float64           `yaml:"price"`
	OriginalPrice  float64           `yaml:"originalPrice"`
	Stock          int64             `yaml:"stock"`
	SKU            string            `yaml:"sku"`
	Supplier       string            `yaml:"supplier"`
	Images         []string          `yaml:"images"`
	Specifications map[string]string `yaml:"specifications"`
	Features       []string          `yaml:"features"`
	Rating         float64           `yaml:"rating"`
	Reviews        int64             `yaml:"reviews"`
}

// File is the root structure of products.yaml.
type File struct {
	Products []Entry `yaml:"products"`
}
