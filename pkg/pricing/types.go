package pricing

// retailPriceResponse is the envelope returned by the retail prices query
// endpoint. Some deployments emit the items key lowercase; encoding/json's
// case-insensitive field matching absorbs the difference.
type retailPriceResponse struct {
	Items        []retailPriceItem `json:"Items"`
	NextPageLink string            `json:"NextPageLink"`
	Count        int               `json:"Count"`
}

// retailPriceItem is a single catalog record. The price appears under
// retailPrice or, in some catalog variants, unitPrice; both stay pointers so a
// null or absent value is distinguishable from an explicit zero.
type retailPriceItem struct {
	RetailPrice          *float64 `json:"retailPrice"`
	UnitPrice            *float64 `json:"unitPrice"`
	CurrencyCode         string   `json:"currencyCode"`
	ServiceName          string   `json:"serviceName"`
	ProductName          string   `json:"productName"`
	SKUName              string   `json:"skuName"`
	ARMSKUName           string   `json:"armSkuName"`
	ARMRegionName        string   `json:"armRegionName"`
	MeterName            string   `json:"meterName"`
	UnitOfMeasure        string   `json:"unitOfMeasure"`
	Type                 string   `json:"type"`
	IsPrimaryMeterRegion bool     `json:"isPrimaryMeterRegion"`
}

// price returns the record's hourly price, preferring retailPrice and falling
// back to unitPrice. ok is false when neither field carries a number.
func (i retailPriceItem) price() (float64, bool) {
	if i.RetailPrice != nil {
		return *i.RetailPrice, true
	}
	if i.UnitPrice != nil {
		return *i.UnitPrice, true
	}
	return 0, false
}
