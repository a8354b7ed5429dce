package models

// ShopifyHeader is the fixed column set of the Shopify product import CSV,
// in output order.
var ShopifyHeader = []string{
	"Handle",
	"Title",
	"Body (HTML)",
	"Vendor",
	"Product Category",
	"Type",
	"Tags",
	"Published",
	"Option1 Name",
	"Option1 Value",
	"Option2 Name",
	"Option2 Value",
	"Variant SKU",
	"Variant Grams",
	"Variant Inventory Tracker",
	"Variant Inventory Qty",
	"Variant Inventory Policy",
	"Variant Fulfillment Service",
	"Variant Price",
	"Variant Compare At Price",
	"Variant Requires Shipping",
	"Variant Taxable",
	"Status",
}

// OutputRow is one finished Shopify import row. Field order mirrors
// ShopifyHeader.
type OutputRow struct {
	Handle             string `json:"handle"`
	Title              string `json:"title"`
	BodyHTML           string `json:"body_html"`
	Vendor             string `json:"vendor"`
	ProductCategory    string `json:"product_category"`
	Type               string `json:"type"`
	Tags               string `json:"tags"`
	Published          string `json:"published"`
	Option1Name        string `json:"option1_name"`
	Option1Value       string `json:"option1_value"`
	Option2Name        string `json:"option2_name"`
	Option2Value       string `json:"option2_value"`
	VariantSKU         string `json:"variant_sku"`
	VariantGrams       string `json:"variant_grams"`
	InventoryTracker   string `json:"variant_inventory_tracker"`
	InventoryQty       int    `json:"variant_inventory_qty"`
	InventoryPolicy    string `json:"variant_inventory_policy"`
	FulfillmentService string `json:"variant_fulfillment_service"`
	Price              string `json:"variant_price"`
	CompareAtPrice     string `json:"variant_compare_at_price"`
	RequiresShipping   string `json:"variant_requires_shipping"`
	Taxable            string `json:"variant_taxable"`
	Status             string `json:"status"`
}
