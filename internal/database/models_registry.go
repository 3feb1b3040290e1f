package database

import "inkwell/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Authors come first so the posts foreign key has a target.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Author{},
		&models.Post{},
	}
}
