package impact

// Per-capita weekly relief coefficients (BNPB Perka 7/2008 minimum aid).
const (
	riceKgPerPerson     = 2.8
	drinkingLPerPerson  = 17.5
	waterLPerPerson     = 67
	personsPerFamilyKit = 5
	personsPerToilet    = 20
)

// Needs is the weekly relief-supply estimate for an evacuated population.
type Needs struct {
	RiceKg         int `json:"rice_kg"`
	DrinkingWaterL int `json:"drinking_water_l"`
	WaterL         int `json:"water_l"`
	FamilyKits     int `json:"family_kits"`
	Toilets        int `json:"toilets"`
}

// WeeklyNeeds derives relief supplies from an evacuated-population count.
// All results truncate toward zero. Inputs are not validated: a negative
// count yields negative needs, which is the caller's problem to avoid.
func WeeklyNeeds(evacuated int) Needs {
	return Needs{
		RiceKg:         int(float64(evacuated) * riceKgPerPerson),
		DrinkingWaterL: int(float64(evacuated) * drinkingLPerPerson),
		WaterL:         evacuated * waterLPerPerson,
		FamilyKits:     evacuated / personsPerFamilyKit,
		Toilets:        evacuated / personsPerToilet,
	}
}
