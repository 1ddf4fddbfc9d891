package domain

// MonthlyStat is one bucket of the registration trend series. Name is a
// short month label; the series always carries exactly six entries, oldest
// month first. The capitalized JSON keys match the chart contract.
type MonthlyStat struct {
	Name   string `json:"name"`
	Owners int    `json:"Owners"`
	Users  int    `json:"Users"`
}

// StatusSlice is one slice of the property status distribution. The series
// always carries exactly three entries in the fixed order Occupied, Vacant,
// Maintenance; charts color-key by index.
type StatusSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// KPISet holds the four dashboard scalar cards. Counts are never zero: a
// zero true count is replaced by a fixed display placeholder.
type KPISet struct {
	OwnersCount     int    `json:"ownersCount"`
	UsersCount      int    `json:"usersCount"`
	PropertiesCount int    `json:"propertiesCount"`
	RevenueDisplay  string `json:"revenueDisplay"`
}

// DashboardStats is the full chart-ready dashboard payload.
type DashboardStats struct {
	KPIs               KPISet        `json:"kpis"`
	Registrations      []MonthlyStat `json:"registrations"`
	StatusDistribution []StatusSlice `json:"statusDistribution"`
}
