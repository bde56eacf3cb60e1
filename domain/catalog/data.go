package catalog

// Default returns the built-in appliance failure tables and replacement
// catalog. Values mirror the Swiss appliance service dataset the system was
// calibrated on; prices are CHF.
func Default() *Catalog {
	appliances := map[string]map[string]ApplianceProfile{
		"cooktop": {
			"V-Zug": {
				WarrantyYears: 2,
				AvgLifespan:   12,
				KnownErrors: []ErrorSignature{
					{Code: "E26", Description: "Water in machine, pump not draining", RepairCost: 180, SuccessRate: 0.95},
					{Code: "F7_E3", Description: "Heating element failure", RepairCost: 220, SuccessRate: 0.90},
					{Code: "power_issue", Description: "No power/not turning on", RepairCost: 150, SuccessRate: 0.85},
				},
			},
			"Miele": {
				WarrantyYears: 2,
				AvgLifespan:   15,
				KnownErrors: []ErrorSignature{
					{Code: "heating_failure", Description: "Uneven heating", RepairCost: 280, SuccessRate: 0.88},
					{Code: "display_error", Description: "Display not working", RepairCost: 320, SuccessRate: 0.75},
					{Code: "sensor_fault", Description: "Temperature sensor malfunction", RepairCost: 200, SuccessRate: 0.92},
				},
			},
		},
		"dishwasher": {
			"V-Zug": {
				WarrantyYears: 2,
				AvgLifespan:   10,
				KnownErrors: []ErrorSignature{
					{Code: "water_leak", Description: "Water leaking from door", RepairCost: 160, SuccessRate: 0.94},
					{Code: "not_cleaning", Description: "Poor cleaning performance", RepairCost: 120, SuccessRate: 0.90},
					{Code: "pump_noise", Description: "Unusual pump noise", RepairCost: 240, SuccessRate: 0.85},
				},
			},
		},
		"oven": {
			"Siemens": {
				WarrantyYears: 2,
				AvgLifespan:   12,
				KnownErrors: []ErrorSignature{
					{Code: "door_seal", Description: "Door seal damaged", RepairCost: 200, SuccessRate: 0.95},
					{Code: "heating_element", Description: "Heating element burned out", RepairCost: 300, SuccessRate: 0.88},
					{Code: "temperature_control", Description: "Temperature not accurate", RepairCost: 250, SuccessRate: 0.90},
				},
			},
		},
	}

	products := map[string][]Product{
		"cooktop": {
			{Brand: "V-Zug", Model: "AdoraID V6000 Supreme", Price: 2400, Margin: 480, Stock: StockHigh, EnergyRating: "A++", Features: []string{"Induction", "Touch Control", "Bridge Function"}},
			{Brand: "V-Zug", Model: "AdoraID V4000", Price: 1800, Margin: 360, Stock: StockMed, EnergyRating: "A+", Features: []string{"Induction", "Touch Control"}},
			{Brand: "Miele", Model: "KM 7897 FL", Price: 2800, Margin: 560, Stock: StockLow, EnergyRating: "A++", Features: []string{"Induction", "Con@ct 2.0", "PowerFlex"}},
			{Brand: "Siemens", Model: "EX875LYC1E", Price: 1200, Margin: 240, Stock: StockHigh, EnergyRating: "A", Features: []string{"Induction", "Touch Control"}},
		},
		"dishwasher": {
			{Brand: "V-Zug", Model: "Adora SL V4000", Price: 1600, Margin: 320, Stock: StockHigh, EnergyRating: "A+++", Features: []string{"OptiDos", "EcoManagement", "Silence Program"}},
			{Brand: "Miele", Model: "G 7960 SCVi", Price: 2200, Margin: 440, Stock: StockMed, EnergyRating: "A+++", Features: []string{"AutoDos", "Perfect GlassCare", "3D+ Cutlery Tray"}},
		},
		"oven": {
			{Brand: "V-Zug", Model: "Combair V6000 Supreme", Price: 3200, Margin: 640, Stock: StockMed, EnergyRating: "A++", Features: []string{"Steam Cooking", "Automatic Programs", "Moisture Plus"}},
			{Brand: "Siemens", Model: "HB678GBS6", Price: 1800, Margin: 360, Stock: StockHigh, EnergyRating: "A+", Features: []string{"PerfectBake", "coolStart", "ecoClean Direct"}},
		},
	}

	basePrices := map[string]float64{
		"cooktop":    2000,
		"dishwasher": 1500,
		"oven":       2500,
	}

	tradeInBase := map[string]float64{
		"cooktop":    200,
		"oven":       300,
		"dishwasher": 250,
	}

	return New(appliances, products, basePrices, tradeInBase)
}
