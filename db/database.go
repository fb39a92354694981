package db

import "gorm.io/gorm"

// Database hands out the underlying gorm handle and owns its lifecycle.
type Database interface {
	GetDB() *gorm.DB
	Close() error
}

// GormStore adapts a *gorm.DB to the Database interface. Tests build one
// around an in-memory handle instead of going through Connect.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) GetDB() *gorm.DB { return s.DB }

func (s *GormStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
