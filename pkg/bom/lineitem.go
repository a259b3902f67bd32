package bom

// MaxHoursPerMonth is the number of hours in a 31-day month, the upper bound
// for any line item's hoursPerMonth.
const MaxHoursPerMonth = 744

// LineItem is one validated entry of a Bill of Materials. Field values carry
// exactly what the source JSON held; quantities stay fractional when the model
// emitted fractional numbers.
type LineItem struct {
	ServiceName   string  `json:"serviceName"`
	SKU           string  `json:"sku"`
	Quantity      float64 `json:"quantity"`
	Region        string  `json:"region"`
	ARMRegionName string  `json:"armRegionName"`
	HoursPerMonth float64 `json:"hoursPerMonth"`
}

// requiredFields lists every key a BOM item must carry, in reporting order.
var requiredFields = []string{
	"serviceName",
	"sku",
	"quantity",
	"region",
	"armRegionName",
	"hoursPerMonth",
}

var (
	stringFields  = []string{"serviceName", "sku", "region", "armRegionName"}
	numericFields = []string{"quantity", "hoursPerMonth"}
)
