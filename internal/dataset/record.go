package dataset

// Record is one enriched examination row.
type Record struct {
	ID          int
	Height      float64 // cm
	Weight      float64 // kg
	Systolic    float64
	Diastolic   float64
	BMI         float64
	Cholesterol int // 0 normal, 1 above normal
	Glucose     int // 0 normal, 1 above normal
	Smoke       int
	Alcohol     int
	Active      int
	Cardio      int
	Overweight  int
}

// Records materializes the table as typed rows.
func (t *Table) Records() []Record {
	n := t.Nrow()
	col := func(name string) []float64 {
		s := t.df.Col(name)
		if s.Err != nil {
			return make([]float64, n)
		}
		return s.Float()
	}
	ids := col(t.IDColumn())
	height, weight := col(ColHeight), col(ColWeight)
	hi, lo := col(ColSystolic), col(ColDiastolic)
	bmi := col(ColBMI)
	chol, gluc := col(ColCholesterol), col(ColGlucose)
	smoke, alco, active := col(ColSmoke), col(ColAlcohol), col(ColActive)
	cardio, over := col(ColCardio), col(ColOverweight)

	out := make([]Record, n)
	for i := range out {
		out[i] = Record{
			ID:          int(ids[i]),
			Height:      height[i],
			Weight:      weight[i],
			Systolic:    hi[i],
			Diastolic:   lo[i],
			BMI:         bmi[i],
			Cholesterol: int(chol[i]),
			Glucose:     int(gluc[i]),
			Smoke:       int(smoke[i]),
			Alcohol:     int(alco[i]),
			Active:      int(active[i]),
			Cardio:      int(cardio[i]),
			Overweight:  int(over[i]),
		}
	}
	return out
}
