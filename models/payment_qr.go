package models

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// PaymentQR is the UPI QR image the checkout widget shows as its
// payment target. The most recently uploaded one wins.
type PaymentQR struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	FileName  string         `json:"file_name" gorm:"not null"`
	FileURL   string         `json:"file_url" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func SavePaymentQR(db *gorm.DB, fileName, fileURL string) (*PaymentQR, error) {
	qr := &PaymentQR{
		FileName: fileName,
		FileURL:  fileURL,
	}
	if err := db.Create(qr).Error; err != nil {
		return nil, err
	}

	log.Printf("📁 Saved payment QR in DB: %s -> %s", fileName, fileURL)
	return qr, nil
}

func LatestPaymentQR(db *gorm.DB) (*PaymentQR, error) {
	var qr PaymentQR
	if err := db.Order("created_at DESC").First(&qr).Error; err != nil {
		return nil, err
	}
	return &qr, nil
}
