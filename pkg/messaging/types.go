package messaging

type ChangeTopic string

const (
	TrackingTopic ChangeTopic = "tracking"
	CatalogTopic  ChangeTopic = "catalog_change"
)

// CatalogChange announces a new dataset in the configured catalog source.
type CatalogChange struct {
	Products int `json:"products"`
	Brands   int `json:"brands"`
}
