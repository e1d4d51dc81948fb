package entity

// Logical columns used by the built-in dataset views.
const (
	ColClient         LogicalColumn = "CLIENT"
	ColClassification LogicalColumn = "CLASSIFICATION"
	ColGCOC           LogicalColumn = "GC_OC"
	ColExpectedDate   LogicalColumn = "EXPECTED_DATE"
	ColOnTime         LogicalColumn = "ON_TIME"
	ColLate           LogicalColumn = "LATE"
	ColNotDelivered   LogicalColumn = "NOT_DELIVERED"

	ColWarehouse LogicalColumn = "WAREHOUSE"
	ColMaterial  LogicalColumn = "MATERIAL"
	ColFreeQty   LogicalColumn = "FREE_QTY"
	ColStatus    LogicalColumn = "STATUS"

	ColMonthLabel LogicalColumn = "MONTH_LABEL"
	ColDate       LogicalColumn = "DATE"

	ColSite         LogicalColumn = "SITE"
	ColAvailability LogicalColumn = "AVAILABILITY"
)
