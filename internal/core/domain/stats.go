package domain

// GlobalStats mirrors StatistiquesDTO served by /admin/stats/globales.
type GlobalStats struct {
	TotalAppointments     int64 `json:"totalRendezVous"`
	PlannedAppointments   int64 `json:"rendezVousPlanifies"`
	ConfirmedAppointments int64 `json:"rendezVousConfirmes"`
	CompletedAppointments int64 `json:"rendezVousTermines"`
	CancelledAppointments int64 `json:"rendezVousAnnules"`
	TotalPatients         int64 `json:"totalPatients"`
	TotalDoctors          int64 `json:"totalMedecins"`
	ActiveDoctors         int64 `json:"medecinActifs"`
	ActivePatients        int64 `json:"patientActifs"`
	AppointmentsToday     int64 `json:"rendezVousAujourdhui"`
	NewPatientsToday      int64 `json:"nouveauxPatientsAujourdhui"`
}

// PeriodStats covers a date range.
type PeriodStats struct {
	Appointments int64 `json:"rendezVousPeriode"`
	NewPatients  int64 `json:"nouveauxPatientsPeriode"`
	NewDoctors   int64 `json:"nouveauxMedecinsPeriode"`
}

// DashboardStats is the aggregate served by /admin/stats/dashboard.
type DashboardStats struct {
	Global         GlobalStats      `json:"globales"`
	Week           PeriodStats      `json:"semaine"`
	Month          PeriodStats      `json:"mois"`
	MonthlyHistory map[string]int64 `json:"evolutionMensuelle"`
}

// RecentActivity is served by /admin/stats/activite-recente.
type RecentActivity struct {
	RecentAppointments int64            `json:"rdvCreesRecemment"`
	RecentPatients     int64            `json:"nouveauxPatientsRecemment"`
	RecentDoctors      int64            `json:"nouveauxMedecinsRecemment"`
	LatestAppointments []map[string]any `json:"derniersRendezVous"`
}

// Ratios are whole percentages of the appointment total.
type Ratios struct {
	CancellationRate int `json:"tauxAnnulation"`
	CompletionRate   int `json:"tauxCompletion"`
	ConfirmationRate int `json:"tauxConfirmation"`
}

// MonthlyPoint is one bar of the monthly evolution chart.
type MonthlyPoint struct {
	Month        string `json:"mois"`
	Appointments int64  `json:"rendezVous"`
}
