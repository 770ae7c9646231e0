package domain

// PrescriptionEntry is one medicine line of a prescription.
type PrescriptionEntry struct {
	PrescriptionID int    `bson:"prescription_id" json:"prescription_id"`
	MedicineID     int    `bson:"medicine_id" json:"medicine_id"`
	Dosage         string `bson:"dosage,omitempty" json:"dosage,omitempty"`
	Frequency      string `bson:"frequency,omitempty" json:"frequency,omitempty"`
	Duration       string `bson:"duration,omitempty" json:"duration,omitempty"`
	Quantity       int    `bson:"quantity" json:"quantity"`
	DispensedQty   int    `bson:"dispensed_qty" json:"dispensed_qty"`
}

// Prescription holds the ordered entries written during a consultation.
type Prescription struct {
	ID             int                 `bson:"_id" json:"id"`
	ConsultationID int                 `bson:"consultation_id,omitempty" json:"consultation_id,omitempty"`
	Entries        []PrescriptionEntry `bson:"entries" json:"entries"`
}

// DispensedFor sums dispensed quantity of the given medicine across entries.
func (p Prescription) DispensedFor(medicineID int) int {
	total := 0
	for _, entry := range p.Entries {
		if entry.MedicineID == medicineID {
			total += entry.DispensedQty
		}
	}
	return total
}
