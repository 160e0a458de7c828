package session

import "github.com/Abhishek28042001/PureCheck/internal/nutrition"

// Context is the per-session "current product" slot: the success payload of
// the most recent analysis plus the stored image name. It is written and
// replaced as a whole, never partially mutated.
type Context struct {
	Product   nutrition.ProductRecord `json:"product_data"`
	Analysis  nutrition.Analysis      `json:"analysis"`
	Rating    nutrition.Rating        `json:"inr_result"`
	ImagePath string                  `json:"image_path"`
}
