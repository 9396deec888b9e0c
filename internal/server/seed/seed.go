// Package seed loads the demo catalog so a fresh backend has medicines and
// doctors to browse.
package seed

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/logging"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/server/notify"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
)

var Medicines = []models.Medicine{
	{ID: "med-paracetamol-500", Name: "Paracetamol 500mg", Description: "Relief from fever and mild to moderate pain", Category: "pain-relief", Manufacturer: "Cipla", Price: 25, InStock: true},
	{ID: "med-ibuprofen-400", Name: "Ibuprofen 400mg", Description: "Anti-inflammatory for pain and swelling", Category: "pain-relief", Manufacturer: "Abbott", Price: 40, InStock: true},
	{ID: "med-cetirizine-10", Name: "Cetirizine 10mg", Description: "Antihistamine for allergies and hay fever", Category: "allergy", Manufacturer: "Dr. Reddy's", Price: 30, InStock: true},
	{ID: "med-metformin-500", Name: "Metformin 500mg", Description: "Blood sugar control for type 2 diabetes", Category: "diabetes", Manufacturer: "Sun Pharma", Price: 60, InStock: true, RequiresPrescription: true},
	{ID: "med-amlodipine-5", Name: "Amlodipine 5mg", Description: "Calcium channel blocker for high blood pressure", Category: "cardiac", Manufacturer: "Lupin", Price: 55, InStock: true, RequiresPrescription: true},
	{ID: "med-omeprazole-20", Name: "Omeprazole 20mg", Description: "Reduces stomach acid, treats heartburn", Category: "digestive", Manufacturer: "Zydus", Price: 45, InStock: false},
	{ID: "med-vitamin-d3", Name: "Vitamin D3 60000 IU", Description: "Weekly vitamin D supplement", Category: "supplements", Manufacturer: "Mankind", Price: 120, InStock: true},
	{ID: "med-ors", Name: "ORS Sachet", Description: "Oral rehydration salts for dehydration", Category: "digestive", Manufacturer: "FDC", Price: 20, InStock: true},
}

var Doctors = []models.Doctor{
	{ID: "doc-sharma", Name: "Dr. Anjali Sharma", Specialization: "cardiology", Location: "Mumbai, Maharashtra", Experience: 15, Rating: 4.8, ConsultationFee: 800, Available: true},
	{ID: "doc-iyer", Name: "Dr. Ramesh Iyer", Specialization: "general medicine", Location: "Chennai, Tamil Nadu", Experience: 22, Rating: 4.6, ConsultationFee: 500, Available: true},
	{ID: "doc-khan", Name: "Dr. Sana Khan", Specialization: "dermatology", Location: "New Delhi, Delhi", Experience: 9, Rating: 4.7, ConsultationFee: 700, Available: true},
	{ID: "doc-patel", Name: "Dr. Vikram Patel", Specialization: "endocrinology", Location: "Ahmedabad, Gujarat", Experience: 12, Rating: 4.5, ConsultationFee: 900, Available: false},
	{ID: "doc-nair", Name: "Dr. Meera Nair", Specialization: "pediatrics", Location: "Kochi, Kerala", Experience: 18, Rating: 4.9, ConsultationFee: 600, Available: true},
	{ID: "doc-singh", Name: "Dr. Harpreet Singh", Specialization: "orthopedics", Location: "Navi Mumbai, Maharashtra", Experience: 11, Rating: 4.4, ConsultationFee: 750, Available: true},
}

// Catalog inserts the demo medicines and doctors into whichever of the two
// collections is empty. Existing catalogs are left alone.
func Catalog(ctx context.Context, s store.Store, b notify.Broker, l logging.Logger) error {
	if err := fill(ctx, s, b, l, api.Medicines, Medicines, func(m models.Medicine) string { return m.ID }); err != nil {
		return err
	}
	return fill(ctx, s, b, l, api.Doctors, Doctors, func(d models.Doctor) string { return d.ID })
}

func fill[T any](ctx context.Context, s store.Store, b notify.Broker, l logging.Logger, c api.Collection, items []T, id func(T) string) error {
	existing, err := s.Find(ctx, c, nil)
	if err != nil {
		return fmt.Errorf("seed %s: %w", c, err)
	}
	if len(existing) > 0 {
		l.Debug(ctx, "catalog already present", "collection", string(c), "count", len(existing))
		return nil
	}

	for _, it := range items {
		if err := s.Insert(ctx, c, id(it), it); err != nil {
			return fmt.Errorf("seed %s: %w", c, err)
		}
	}
	l.Info(ctx, "seeded catalog", "collection", string(c), "count", len(items))

	if err := b.Publish(ctx, api.CatalogTopic(c)); err != nil {
		l.Warn(ctx, "publish failed", "collection", string(c), "error", err)
	}
	return nil
}
