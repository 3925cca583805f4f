package db

import (
	"github.com/jxeer/Harmonia/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type JournalRepository interface {
	CreateEntry(entry *models.HealthJournalEntry) (*models.HealthJournalEntry, error)
	GetEntriesByPatient(patientID string, limit int) ([]models.HealthJournalEntry, error)
}

type journalRepo struct {
	DB *gorm.DB
}

func NewJournalRepo(db *GormDB) JournalRepository {
	return &journalRepo{db.DB}
}

func (j *journalRepo) CreateEntry(entry *models.HealthJournalEntry) (*models.HealthJournalEntry, error) {
	if err := j.DB.Create(entry).Error; err != nil {
		return nil, errors.Wrap(err, "could not create journal entry")
	}
	return entry, nil
}

func (j *journalRepo) GetEntriesByPatient(patientID string, limit int) ([]models.HealthJournalEntry, error) {
	if limit <= 0 {
		limit = 30
	}
	var entries []models.HealthJournalEntry
	err := j.DB.
		Where("patient_id = ?", patientID).
		Order("entry_date DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list journal entries")
	}
	return entries, nil
}
