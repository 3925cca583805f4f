package db

import (
	"time"

	"github.com/jxeer/Harmonia/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	CreateAppointment(appointment *models.Appointment) (*models.Appointment, error)
	GetAppointmentByID(id string) (*models.Appointment, error)
	GetAppointmentsByPatient(patientID string) ([]models.Appointment, error)
	GetAppointmentsByProvider(providerID string) ([]models.Appointment, error)
	UpdateAppointment(id string, updates map[string]interface{}) (*models.Appointment, error)
	CountAppointments() (int64, error)
	CountAppointmentsByProvider(providerID string) (int64, error)
	CountDistinctPatientsByProvider(providerID string) (int64, error)
	MonthlyAppointmentCounts(providerID string, since time.Time) ([]models.MonthlyAppointmentCount, error)
}

type appointmentRepo struct {
	DB *gorm.DB
}

func NewAppointmentRepo(db *GormDB) AppointmentRepository {
	return &appointmentRepo{db.DB}
}

func (r *appointmentRepo) CreateAppointment(appointment *models.Appointment) (*models.Appointment, error) {
	if err := r.DB.Create(appointment).Error; err != nil {
		return nil, errors.Wrap(err, "could not create appointment")
	}
	return appointment, nil
}

func (r *appointmentRepo) GetAppointmentByID(id string) (*models.Appointment, error) {
	appointment := &models.Appointment{}
	err := r.DB.
		Preload("Patient.User").
		Preload("Provider.User").
		Where("id = ?", id).
		First(appointment).Error
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

func (r *appointmentRepo) GetAppointmentsByPatient(patientID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.DB.
		Preload("Patient.User").
		Preload("Provider.User").
		Where("patient_id = ?", patientID).
		Order("appointment_date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list patient appointments")
	}
	return appointments, nil
}

func (r *appointmentRepo) GetAppointmentsByProvider(providerID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.DB.
		Preload("Patient.User").
		Preload("Provider.User").
		Where("provider_id = ?", providerID).
		Order("appointment_date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list provider appointments")
	}
	return appointments, nil
}

func (r *appointmentRepo) UpdateAppointment(id string, updates map[string]interface{}) (*models.Appointment, error) {
	result := r.DB.Model(&models.Appointment{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "could not update appointment")
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetAppointmentByID(id)
}

func (r *appointmentRepo) CountAppointments() (int64, error) {
	var count int64
	err := r.DB.Model(&models.Appointment{}).Count(&count).Error
	return count, err
}

func (r *appointmentRepo) CountAppointmentsByProvider(providerID string) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Appointment{}).Where("provider_id = ?", providerID).Count(&count).Error
	return count, err
}

func (r *appointmentRepo) CountDistinctPatientsByProvider(providerID string) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Appointment{}).
		Where("provider_id = ?", providerID).
		Distinct("patient_id").
		Count(&count).Error
	return count, err
}

// MonthlyAppointmentCounts buckets a provider's appointments by calendar
// month, feeding the dashboard chart.
func (r *appointmentRepo) MonthlyAppointmentCounts(providerID string, since time.Time) ([]models.MonthlyAppointmentCount, error) {
	var results []models.MonthlyAppointmentCount
	err := r.DB.Model(&models.Appointment{}).
		Select("TO_CHAR(appointment_date, 'YYYY-MM') AS month, COUNT(*) AS count").
		Where("provider_id = ? AND appointment_date >= ?", providerID, since).
		Group("TO_CHAR(appointment_date, 'YYYY-MM')").
		Order("TO_CHAR(appointment_date, 'YYYY-MM')").
		Scan(&results).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not bucket appointments by month")
	}
	return results, nil
}
