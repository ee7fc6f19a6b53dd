package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/konsultaklinik/clinic-scheduler/internal/models"
)

// Demo dataset for a fresh database. Every seeder is idempotent: it only
// inserts when its table is empty, so restarting the API never duplicates
// rows.

var dummyNames = []string{
	"Asep", "Saiful", "Ujang", "Budi", "Siti", "Aisyah", "Dewi", "Dian",
	"Rizal", "Ahmad", "Rudi", "Rina", "Yusuf", "Hendra", "Nina", "Tono",
	"Tini", "Wawan", "Gita", "Riska",
}

var birthPlaces = []string{"Gresik", "Surabaya", "Lamongan", "Sidoarjo", "Bojonegoro"}
var jobs = []string{"Karyawan", "Wiraswasta", "Pelajar", "Ibu Rumah Tangga", "PNS"}
var educations = []string{"SD", "SMP", "SMA", "D3", "S1"}
var relations = []string{"Suami", "Istri", "Anak-ke 1", "Anak-ke 2", "Anak-ke 3"}

func Run(db *gorm.DB, log *zap.Logger) error {
	if err := seedAdminUser(db, log); err != nil {
		return err
	}
	if err := seedServices(db, log); err != nil {
		return err
	}
	if err := seedDoctors(db, log); err != nil {
		return err
	}
	if err := seedWorkHours(db, log); err != nil {
		return err
	}
	return seedBookings(db, log)
}

func seedAdminUser(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.User{}).
		Where("username = ?", "admin").
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	log.Info("seeded admin user", zap.String("username", "admin"))
	return nil
}

func seedServices(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	services := []models.Service{
		{Name: "Scaling", Description: "Pembersihan plak/karang gigi", DurationMinutes: 30, Active: true},
		{Name: "Tambal Gigi", Description: "Perbaikan gigi berlubang", DurationMinutes: 45, Active: true},
		{Name: "Cabut Gigi", Description: "Ekstraksi gigi", DurationMinutes: 60, Active: true},
		{Name: "Pembersihan Karang", Description: "Detartrasi", DurationMinutes: 30, Active: true},
		{Name: "Konsultasi", Description: "Konsultasi umum", DurationMinutes: 20, Active: true},
	}
	if err := db.Create(&services).Error; err != nil {
		return err
	}

	log.Info("seeded services", zap.Int("count", len(services)))
	return nil
}

func seedDoctors(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.Doctor{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	doctors := []models.Doctor{
		{
			Name:           "Drg. Andi",
			Specialization: "Konservasi Gigi",
			Description:    "Dokter gigi umum fokus tambal gigi dan pembersihan karang.",
			Active:         true,
		},
		{
			Name:           "Drg. Bunga",
			Specialization: "Bedah Mulut",
			Description:    "Spesialis cabut gigi sulit dan tindakan pembedahan minor.",
			Active:         true,
		},
	}
	if err := db.Create(&doctors).Error; err != nil {
		return err
	}

	// Assign every seeded service to every seeded doctor so the agent
	// filter routes have data to work with.
	var services []models.Service
	if err := db.Find(&services).Error; err != nil {
		return err
	}
	for _, doc := range doctors {
		for _, svc := range services {
			row := models.DoctorService{DoctorID: doc.ID, ServiceID: svc.ID}
			if err := db.Create(&row).Error; err != nil {
				return err
			}
		}
	}

	log.Info("seeded doctors", zap.Int("count", len(doctors)))
	return nil
}

// seedWorkHours gives every doctor without a template Mon-Fri 09:00-17:00.
func seedWorkHours(db *gorm.DB, log *zap.Logger) error {
	var doctors []models.Doctor
	if err := db.Find(&doctors).Error; err != nil {
		return err
	}

	seeded := 0
	for _, doc := range doctors {
		var count int64
		if err := db.Model(&models.DoctorWorkHours{}).
			Where("doctor_id = ?", doc.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		for weekday := 1; weekday <= 5; weekday++ {
			row := models.DoctorWorkHours{
				DoctorID:  doc.ID,
				Weekday:   weekday,
				StartTime: "09:00",
				EndTime:   "17:00",
			}
			if err := db.Create(&row).Error; err != nil {
				return err
			}
		}
		seeded++
	}

	if seeded > 0 {
		log.Info("seeded work hours", zap.Int("doctors", seeded))
	}
	return nil
}

// seedBookings fills the current month with 0-3 random bookings per day.
func seedBookings(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.Booking{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	year, month := now.Year(), now.Month()
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()

	var bookings []models.Booking

	for day := 1; day <= daysInMonth; day++ {
		perDay := rand.Intn(4)
		for j := 0; j < perDay; j++ {
			when := time.Date(year, month, day, 9+j, 0, 0, 0, time.Local)

			ageYears := 6 + rand.Intn(60)
			dob := now.AddDate(-ageYears, -rand.Intn(12), -rand.Intn(31))

			gender := "Laki-laki"
			if rand.Intn(2) == 0 {
				gender = "Perempuan"
			}

			marital := "Belum Menikah"
			if ageYears >= 18 && rand.Intn(10) < 6 {
				marital = "Menikah"
			}

			status := "pending"
			if rand.Intn(10) >= 6 {
				status = "approved"
			}

			bookings = append(bookings, models.Booking{
				Reference:       uuid.NewString(),
				Patient:         pick(dummyNames),
				Gender:          gender,
				NIK:             "3515" + randomDigits(12),
				Relation:        pick(relations),
				FamilyHead:      pick(dummyNames),
				Address:         fmt.Sprintf("Jl. %s No. %d, Gresik, Jawa Timur", pick(dummyNames), 1+rand.Intn(200)),
				BirthPlace:      pick(birthPlaces),
				DOB:             &dob,
				MaritalStatus:   marital,
				Job:             pick(jobs),
				Education:       pick(educations),
				Phone:           "08" + randomDigits(10),
				Service:         pick([]string{"Scaling", "Tambal Gigi", "Cabut Gigi", "Pembersihan Karang", "Konsultasi"}),
				BookingDateTime: when,
				Status:          status,
			})
		}
	}

	if len(bookings) == 0 {
		return nil
	}
	if err := db.Create(&bookings).Error; err != nil {
		return err
	}

	log.Info("seeded bookings", zap.Int("count", len(bookings)))
	return nil
}

func pick(options []string) string {
	return options[rand.Intn(len(options))]
}

func randomDigits(n int) string {
	digits := make([]byte, n)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return string(digits)
}
