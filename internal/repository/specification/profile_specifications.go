package specification

import "gorm.io/gorm"

// NotEmail excludes a single identity (the caller themselves)
type NotEmail struct {
	Email string
}

func (s NotEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email <> ?", s.Email)
}

// OppositeGender keeps only profiles whose gender differs from the caller's
type OppositeGender struct {
	Gender string
}

func (s OppositeGender) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("gender <> '' AND gender <> ?", s.Gender)
}

// CompleteOnly keeps profiles that finished signup (required fields present)
type CompleteOnly struct{}

func (s CompleteOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name <> '' AND gender <> '' AND birthdate <> '' AND mbti <> ''")
}
