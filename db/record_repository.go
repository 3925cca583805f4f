package db

import (
	"github.com/jxeer/Harmonia/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type RecordRepository interface {
	CreateRecord(record *models.MedicalRecord) (*models.MedicalRecord, error)
	GetRecordsByPatient(patientID string) ([]models.MedicalRecord, error)
}

type recordRepo struct {
	DB *gorm.DB
}

func NewRecordRepo(db *GormDB) RecordRepository {
	return &recordRepo{db.DB}
}

func (r *recordRepo) CreateRecord(record *models.MedicalRecord) (*models.MedicalRecord, error) {
	if err := r.DB.Create(record).Error; err != nil {
		return nil, errors.Wrap(err, "could not create medical record")
	}
	return record, nil
}

func (r *recordRepo) GetRecordsByPatient(patientID string) ([]models.MedicalRecord, error) {
	var records []models.MedicalRecord
	err := r.DB.
		Preload("Provider.User").
		Where("patient_id = ?", patientID).
		Order("record_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list medical records")
	}
	return records, nil
}
