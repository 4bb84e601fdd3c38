package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	RoleUser  = "user"
	RoleAdmin = "admin"

	// Provenance values for curriculum content. Records with SourceSeeder are
	// owned by the reconciling seeder and may be purged/rewritten by it; anything
	// else is user- or admin-authored and must never be touched.
	SourceSeeder = "seeder"
	SourceUser   = "user"
)
