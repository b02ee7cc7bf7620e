package catering

// Context keys accumulated while drilling. Values are plain data so the
// engine can deep-copy them; IDs that feed API query parameters are ints,
// display names are strings.
const (
	// KeyYear is the calendar year every hierarchy is scoped to.
	KeyYear = "year"

	// KeyFromMonth and KeyToMonth bound month-level rows client-side.
	KeyFromMonth = "from_month"
	KeyToMonth   = "to_month"

	// KeySupplier is the optional supplier filter applied to all levels.
	KeySupplier = "supplier_id"

	// KeySupplierName is the display name for the supplier filter.
	KeySupplierName = "supplier_name"

	// KeyMonth and KeyMonthName identify a drilled-into month.
	KeyMonth     = "month"
	KeyMonthName = "month_name"

	// KeySite and KeySiteName identify a drilled-into site.
	KeySite     = "site_id"
	KeySiteName = "site_name"

	// KeyCategory is the canonical category group name sent to the API;
	// KeyCategoryLabel is the English display name shown in breadcrumbs.
	KeyCategory      = "category_name"
	KeyCategoryLabel = "category_label"

	// KeyProducts carries the fan-out selection, in toggle order.
	KeyProducts = "product_names"

	// KeyDay identifies a drilled-into calendar day (ISO date).
	KeyDay = "day"
)
