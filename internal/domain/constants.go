package domain

import "tokobagus/internal/models"

// Upload rules for product images.
const (
	MaxImageBytes   = 5 << 20
	ImageMIMEPrefix = "image/"
	ImageFieldName  = "image"
)

// LowStockThreshold matches the admin dashboard: stock strictly below it is low.
const LowStockThreshold = 10

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Fallback settings served until an admin saves the first settings row.
const (
	DefaultAddress = "Jl Transeram Waihatu, Kairatu Barat, Kab SBB"
	DefaultPhone   = "085243008899"
	DefaultMapsURL = "https://maps.app.goo.gl/nwkqSVyAXtdTC37HA"
	DefaultAboutUs = "Toko Bagus Waihatu adalah toko sembako terpercaya yang menyediakan berbagai macam kebutuhan sehari-hari berkualitas dengan harga terjangkau untuk keluarga Indonesia."
)

func DefaultSettings() models.Setting {
	return models.Setting{
		Address: DefaultAddress,
		Phone:   DefaultPhone,
		MapsURL: DefaultMapsURL,
		AboutUs: DefaultAboutUs,
	}
}
