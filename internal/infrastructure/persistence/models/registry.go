package models

// All returns every model AutoMigrate manages, parents before children.
func All() []interface{} {
	return []interface{}{
		&IdentityModel{},
		&SubmissionModel{},
	}
}
