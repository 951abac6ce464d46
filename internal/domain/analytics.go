package domain

type Bucket string

const (
	BucketDay   Bucket = "day"
	BucketMonth Bucket = "month"
)

type SalesPoint struct {
	Period  string  `json:"period"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type TopShoe struct {
	ShoeID    string  `json:"shoe_id"`
	Brand     string  `json:"brand"`
	Model     string  `json:"model"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

type LowStockItem struct {
	ShoeID string  `json:"shoe_id"`
	Brand  string  `json:"brand"`
	Model  string  `json:"model"`
	Color  string  `json:"color"`
	Size   float64 `json:"size"`
	Stock  int     `json:"stock"`
}
