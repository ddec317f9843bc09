// Package fleet holds the domain model and storage of the fleet registry:
// pilots, ship classes, weapon classes, ships and the weapons mounted on
// ships.
//
// Request bodies arrive as a Payload, the raw field set of a JSON object.
// Validate checks a Payload against the schema of an entity Kind; the
// Decode* functions validate and convert it into a typed patch whose
// Field values distinguish absent, null and set fields. Create operations
// apply a patch to a zero entity; Update operations write only the fields
// the patch carries.
//
// Repositories are backed by database/sql and work with both SQLite and
// PostgreSQL through a query.Placeholder. Constraint failures reported by
// the driver are translated into this package's sentinel errors.
package fleet
