package zayo

// OrderBy is a sort clause accepted by list endpoints.
type OrderBy string

// Sort clauses on the case primary date.
const (
	OrderByDateSooner OrderBy = "primaryDate asc"
	OrderByDateLater  OrderBy = "primaryDate desc"
)

// CaseUrgency classifies a maintenance case.
type CaseUrgency string

// Case urgencies.
const (
	UrgencyPlanned   CaseUrgency = "Planned"
	UrgencyEmergency CaseUrgency = "Emergency"
	UrgencyDemand    CaseUrgency = "Demand"
)

// CaseStatus is the lifecycle state of a case.
type CaseStatus string

// Case statuses.
const (
	StatusClosed    CaseStatus = "Closed"
	StatusScheduled CaseStatus = "Scheduled"
)

// CaseImpact is the expected effect of a case on service.
type CaseImpact string

// Case impact levels.
const (
	ImpactPotentialServiceAffecting CaseImpact = "Potential Service Affecting"
	ImpactServiceAffecting          CaseImpact = "Service Affecting"
)

// NotificationType is the kind of a case notification email.
type NotificationType string

// Notification types.
const (
	NotificationScheduled   NotificationType = "Scheduled"
	NotificationRescheduled NotificationType = "Rescheduled"
	NotificationStarted     NotificationType = "Maintenance Started"
	NotificationStopped     NotificationType = "Maintenance Stopped"
	NotificationCompleted   NotificationType = "Maintenance Completed"
	NotificationCancelled   NotificationType = "Cancelled"
)

// InventoryStatus is the state of a service in the inventory.
type InventoryStatus string

// Inventory statuses.
const (
	InventoryActive        InventoryStatus = "active"
	InventoryPendingChange InventoryStatus = "pending_change"
)

// Filter field names used by the fetchers.
const (
	FieldCaseNumber  = "caseNumber"
	FieldCircuitID   = "circuitId"
	FieldStatus      = "status"
	FieldName        = "name"
	FieldServiceName = "serviceName"
)
