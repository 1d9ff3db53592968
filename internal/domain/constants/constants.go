// Package constants holds identifiers shared across layers.
package constants

// Pub/Sub provider names accepted in configuration.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Event types published for property changes.
const (
	EventPropertyCoordinatesUpdated = "property.coordinates_updated"
	EventPropertyApproved           = "property.approved"
)

// Property payment statuses stored on the property row.
const (
	PropertyPaymentPending       = "Pending"
	PropertyPaymentPaid          = "Paid"
	PropertyPaymentPaidPartially = "Paid_partially"
)

// Names of the seeded payment status rows.
const (
	PaymentStatusPending   = "Pending"
	PaymentStatusPartial   = "Partial"
	PaymentStatusCompleted = "Completed"
)

// Payment metadata keys and values for recurring yearly bills.
const (
	PaymentMetadataType   = "type"
	PaymentMetadataYear   = "year"
	PaymentTypeYearly     = "yearly"
	PaymentTypeOneOff     = "one_off"
	DefaultAdminRoleName  = "admin"
	PhotoObjectNameFormat = "properties/%s/photo"
)
